package load

import (
	"slices"
	"strings"

	"ariga.io/atlas/sql/schema"
	"github.com/go-openapi/inflect"
)

const (
	maxJunctionTableColumns = 6
	minJunctionTableFKs     = 2
)

// JunctionTables returns the names of the tables of s that only join two
// other tables: at least two foreign keys, all of them inside a composite
// primary key, and few columns.
func JunctionTables(s *schema.Schema) map[string]bool {
	junctions := make(map[string]bool)
	for _, t := range s.Tables {
		if isJunction(t) {
			junctions[t.Name] = true
		}
	}
	return junctions
}

func isJunction(t *schema.Table) bool {
	if len(t.ForeignKeys) < minJunctionTableFKs || len(t.Columns) > maxJunctionTableColumns {
		return false
	}
	if t.PrimaryKey == nil || len(t.PrimaryKey.Parts) < minJunctionTableFKs {
		return false
	}
	inPK := func(c *schema.Column) bool {
		return slices.ContainsFunc(t.PrimaryKey.Parts, func(p *schema.IndexPart) bool {
			return p.C != nil && p.C.Name == c.Name
		})
	}
	for _, fk := range t.ForeignKeys {
		if !slices.ContainsFunc(fk.Columns, inPK) {
			return false
		}
	}
	return true
}

// Infer derives relationships from the foreign keys of s for every entity
// of r that declares none. Each foreign key column yields a many-to-one
// relationship, and each junction table joining two entities yields a
// many-to-many pair.
func Infer(r *Registry, s *schema.Schema) {
	open := make(map[*Entity]bool)
	for _, e := range r.Entities() {
		open[e] = len(e.Relationships) == 0
	}
	for _, e := range r.Entities() {
		if !open[e] {
			continue
		}
		perTarget := make(map[string]int)
		for _, fk := range e.Table.ForeignKeys {
			if fk.RefTable != nil {
				perTarget[fk.RefTable.Name]++
			}
		}
		for _, fk := range e.Table.ForeignKeys {
			if fk.RefTable == nil || len(fk.Columns) == 0 {
				continue
			}
			target, ok := r.ByTable(fk.RefTable.Name)
			if !ok {
				continue
			}
			col := fk.Columns[0]
			rel := &Relationship{
				Name:      relationName(e, col.Name),
				Direction: ManyToOne,
				Target:    target.Name,
				Column:    col.Name,
			}
			if perTarget[fk.RefTable.Name] > 1 {
				rel.BackPopulates = rel.Name + "_" + inflect.Pluralize(strings.ToLower(e.Name))
			}
			e.Relationships = append(e.Relationships, rel)
		}
	}
	for _, t := range s.Tables {
		if !isJunction(t) {
			continue
		}
		left, right := t.ForeignKeys[0], t.ForeignKeys[1]
		if left.RefTable == nil || right.RefTable == nil {
			continue
		}
		a, ok1 := r.ByTable(left.RefTable.Name)
		b, ok2 := r.ByTable(right.RefTable.Name)
		if !ok1 || !ok2 || !open[a] || !open[b] {
			continue
		}
		aName := inflect.Pluralize(trimKeySuffix(right.Columns[0].Name))
		bName := inflect.Pluralize(trimKeySuffix(left.Columns[0].Name))
		// A self join gets one relationship. The converter registers the
		// other direction as its reverse edge.
		if a == b {
			rel := &Relationship{
				Name:      aName,
				Direction: ManyToMany,
				Target:    a.Name,
				Secondary: t.Name,
			}
			if bName != aName {
				rel.BackPopulates = bName
			}
			a.Relationships = append(a.Relationships, rel)
			continue
		}
		a.Relationships = append(a.Relationships, &Relationship{
			Name:          aName,
			Direction:     ManyToMany,
			Target:        b.Name,
			Secondary:     t.Name,
			BackPopulates: bName,
		})
		b.Relationships = append(b.Relationships, &Relationship{
			Name:          bName,
			Direction:     ManyToMany,
			Target:        a.Name,
			Secondary:     t.Name,
			BackPopulates: aName,
		})
	}
}

// relationName derives the relationship name of a foreign key column:
// "user_id" becomes "user". The column name is suffixed when the derived
// name is taken by another column.
func relationName(e *Entity, column string) string {
	name := trimKeySuffix(column)
	if name == column || name == "" {
		return column + "_rel"
	}
	if _, ok := e.Column(name); ok {
		return name + "_rel"
	}
	return name
}

func trimKeySuffix(column string) string {
	lower := strings.ToLower(column)
	for _, suffix := range []string{"_id", "_uuid", "_key", "id"} {
		if strings.HasSuffix(lower, suffix) && len(column) > len(suffix) {
			return column[:len(column)-len(suffix)]
		}
	}
	return column
}
