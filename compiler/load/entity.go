// Package load holds the source side of a conversion: mapped entities, their
// tables and relationships, loaded from a mapping file and a live database.
package load

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"ariga.io/atlas/sql/schema"
)

// Direction is the cardinality of a relationship, seen from its owner.
type Direction uint8

// Relationship directions.
const (
	DirectionInvalid Direction = iota
	ManyToOne
	OneToMany
	ManyToMany
)

var directionNames = [...]string{
	DirectionInvalid: "invalid",
	ManyToOne:        "many_to_one",
	OneToMany:        "one_to_many",
	ManyToMany:       "many_to_many",
}

// String returns the string representation of a direction.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return directionNames[DirectionInvalid]
}

// ParseDirection parses a direction name. "MANYTOONE", "many-to-one" and
// "m2o" style spellings are accepted.
func ParseDirection(s string) (Direction, error) {
	n := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s))
	switch n {
	case "manytoone", "m2o":
		return ManyToOne, nil
	case "onetomany", "o2m":
		return OneToMany, nil
	case "manytomany", "m2m":
		return ManyToMany, nil
	default:
		return DirectionInvalid, fmt.Errorf("load: unknown relationship direction %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Relationship is a mapped relationship of an entity.
type Relationship struct {
	// Name is the attribute name of the relationship on its owner.
	Name      string    `json:"name" yaml:"name"`
	Direction Direction `json:"direction" yaml:"direction"`
	// Target is the name of the related entity.
	Target string `json:"target" yaml:"target"`
	// Secondary is the join table of a many-to-many relationship.
	Secondary string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	// BackPopulates names the relationship on the target pointing back.
	BackPopulates string `json:"back_populates,omitempty" yaml:"back_populates,omitempty"`
	// Column is the local foreign key column of a many-to-one relationship.
	// When empty, the first foreign key referencing the target table is used.
	Column string `json:"column,omitempty" yaml:"column,omitempty"`
}

// Entity is a mapped source entity: a named class bound to one table.
type Entity struct {
	Name          string          `json:"name" yaml:"name"`
	Table         *schema.Table   `json:"-" yaml:"-"`
	Relationships []*Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	// Attributes renames columns: column name to attribute key.
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// TableName returns the name of the entity table.
func (e *Entity) TableName() string {
	if e.Table == nil {
		return ""
	}
	return e.Table.Name
}

// Columns returns the table columns in declaration order.
func (e *Entity) Columns() []*schema.Column {
	if e.Table == nil {
		return nil
	}
	return e.Table.Columns
}

// Column returns the column with the given name.
func (e *Entity) Column(name string) (*schema.Column, bool) {
	if e.Table == nil {
		return nil, false
	}
	return e.Table.Column(name)
}

// Key returns the attribute key of c.
func (e *Entity) Key(c *schema.Column) string {
	if k, ok := e.Attributes[c.Name]; ok && k != "" {
		return k
	}
	return c.Name
}

// PrimaryKey reports if c is part of the primary key.
func (e *Entity) PrimaryKey(c *schema.Column) bool {
	if e.Table == nil || e.Table.PrimaryKey == nil {
		return false
	}
	return slices.ContainsFunc(e.Table.PrimaryKey.Parts, func(p *schema.IndexPart) bool {
		return p.C != nil && p.C.Name == c.Name
	})
}

// Unique reports if c alone is covered by a unique index.
func (e *Entity) Unique(c *schema.Column) bool {
	return e.singleIndex(c, true)
}

// Indexed reports if c alone is covered by a non-unique index.
func (e *Entity) Indexed(c *schema.Column) bool {
	return e.singleIndex(c, false)
}

func (e *Entity) singleIndex(c *schema.Column, unique bool) bool {
	if e.Table == nil {
		return false
	}
	for _, idx := range e.Table.Indexes {
		if idx.Unique == unique && len(idx.Parts) == 1 && idx.Parts[0].C != nil && idx.Parts[0].C.Name == c.Name {
			return true
		}
	}
	return false
}

// UniqueConstraints returns the column names of every unique index that
// spans more than one column, in declaration order.
func (e *Entity) UniqueConstraints() [][]string {
	if e.Table == nil {
		return nil
	}
	var cs [][]string
	for _, idx := range e.Table.Indexes {
		if !idx.Unique || len(idx.Parts) < 2 {
			continue
		}
		cols := make([]string, 0, len(idx.Parts))
		for _, p := range idx.Parts {
			if p.C != nil {
				cols = append(cols, p.C.Name)
			}
		}
		if len(cols) > 1 {
			cs = append(cs, cols)
		}
	}
	return cs
}

// ForeignKeys returns the foreign keys c takes part in.
func (e *Entity) ForeignKeys(c *schema.Column) []*schema.ForeignKey {
	if e.Table == nil {
		return nil
	}
	var fks []*schema.ForeignKey
	for _, fk := range e.Table.ForeignKeys {
		if slices.ContainsFunc(fk.Columns, func(fc *schema.Column) bool { return fc.Name == c.Name }) {
			fks = append(fks, fk)
		}
	}
	return fks
}

// Nullable reports if c accepts NULL.
func Nullable(c *schema.Column) bool {
	return c.Type != nil && c.Type.Null
}

// Default returns the literal default value of c, or nil. Quoted strings are
// unquoted and numeric or boolean literals are parsed.
func Default(c *schema.Column) any {
	lit, ok := c.Default.(*schema.Literal)
	if !ok || lit == nil {
		return nil
	}
	return parseLiteral(lit.V)
}

// ServerDefault returns the default expression of c evaluated by the
// database, or "".
func ServerDefault(c *schema.Column) string {
	if x, ok := c.Default.(*schema.RawExpr); ok && x != nil {
		return x.X
	}
	return ""
}

// Length returns the declared size of a string column, or 0.
func Length(c *schema.Column) int {
	if c.Type == nil {
		return 0
	}
	if t, ok := c.Type.Type.(*schema.StringType); ok {
		return t.Size
	}
	return 0
}

// Precision returns the precision of a decimal column, or 0.
func Precision(c *schema.Column) int {
	if c.Type == nil {
		return 0
	}
	if t, ok := c.Type.Type.(*schema.DecimalType); ok {
		return t.Precision
	}
	return 0
}

// Scale returns the scale of a decimal column, or 0.
func Scale(c *schema.Column) int {
	if c.Type == nil {
		return 0
	}
	if t, ok := c.Type.Type.(*schema.DecimalType); ok {
		return t.Scale
	}
	return 0
}

func parseLiteral(v string) any {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && (v[0] == '\'' || v[0] == '"') && v[len(v)-1] == v[0] {
		q := string(v[0])
		return strings.ReplaceAll(v[1:len(v)-1], q+q, q)
	}
	switch strings.ToLower(v) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}
