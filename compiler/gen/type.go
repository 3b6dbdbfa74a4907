package gen

import (
	"slices"

	"github.com/syssam/veloxconv/compiler/load"
	"github.com/syssam/veloxconv/dialect/sqlschema"
	"github.com/syssam/veloxconv/schema/edge"
	"github.com/syssam/veloxconv/schema/field"
	"github.com/syssam/veloxconv/schema/index"
)

// The following types and their exported methods are used by the formatter,
// the exporter and the writer.
type (
	// Type represents one converted model, its fields and relations.
	Type struct {
		entity *load.Entity
		state  state
		// Name holds the model name.
		Name string
		// Table holds the name of the model table.
		Table string
		// Fields holds the column fields in table order.
		Fields []*Field
		// Edges holds the relation edges, declared and virtual.
		Edges []*Edge
		// Indexes are the multi-column unique constraints of the table.
		Indexes []*Index
		// Metadata and Database are the handles the model is bound to.
		Metadata *Metadata
		Database *Database
		// Through indicates that this model was synthesized for the join
		// table of a many-to-many relation.
		Through bool
		// Pos is the position of the model in Graph.Nodes.
		Pos int
	}

	// Field holds a converted column.
	Field struct {
		// Name is the attribute key of the column.
		Name string
		// Tag is the source column-type tag.
		Tag string
		// Params holds the resolved parameters the field was built from.
		Params field.Params
		// Desc is the field descriptor built by the tag constructor.
		Desc *field.Descriptor
	}

	// Edge of the graph between two models.
	Edge struct {
		// Name holds the name of the edge.
		Name string
		// Rel holds the relation kind of the edge.
		Rel Rel
		// Owner holds the model the edge is declared on.
		Owner *Type
		// To is the handle of the target model. It is set even before the
		// target is complete.
		To ForwardRef
		// Type holds the target model, nil while To is an unresolved
		// forward reference.
		Type *Type
		// Through holds the join model of many-to-many edges.
		Through *Type
		// Params holds the resolved relation parameters.
		Params edge.Params
		// Desc is the edge descriptor built by the relation constructor.
		Desc *edge.Descriptor
		// Virtual indicates a reverse edge registered on the target of a
		// declared edge. Virtual edges are not rendered.
		Virtual bool
		// Ref points to the reverse edge for declared edges and to the
		// declaring edge for virtual ones.
		Ref *Edge
	}

	// ForwardRef names a model that may not be converted yet. Pos is the
	// position reserved for the model in Graph.Nodes.
	ForwardRef struct {
		Name string
		Pos  int
	}

	// Index represents a multi-column unique constraint.
	Index struct {
		// Columns are the table columns.
		Columns []string
		// Desc is the constraint descriptor.
		Desc *index.Descriptor
	}
)

type state uint8

const (
	unseen state = iota
	inProgress
	done
)

// Done reports if the model conversion is complete.
func (t *Type) Done() bool { return t.state == done }

// Entity returns the source entity of the model, nil for through models.
func (t *Type) Entity() *load.Entity { return t.entity }

// Field returns the field with the given name.
func (t *Type) Field(name string) (*Field, bool) {
	i := slices.IndexFunc(t.Fields, func(f *Field) bool { return f.Name == name })
	if i == -1 {
		return nil, false
	}
	return t.Fields[i], true
}

// Edge returns the edge with the given name.
func (t *Type) Edge(name string) (*Edge, bool) {
	i := slices.IndexFunc(t.Edges, func(e *Edge) bool { return e.Name == name })
	if i == -1 {
		return nil, false
	}
	return t.Edges[i], true
}

// DeclaredEdges returns the non-virtual edges of the model.
func (t *Type) DeclaredEdges() []*Edge {
	var edges []*Edge
	for _, e := range t.Edges {
		if !e.Virtual {
			edges = append(edges, e)
		}
	}
	return edges
}

// RelatedNames returns the names of all relation edges of the model,
// declared and virtual, sorted.
func (t *Type) RelatedNames() []string {
	names := make([]string, 0, len(t.Edges))
	for _, e := range t.Edges {
		names = append(names, e.Name)
	}
	slices.Sort(names)
	return names
}

// PrimaryKey returns the primary key fields of the model.
func (t *Type) PrimaryKey() []*Field {
	var pk []*Field
	for _, f := range t.Fields {
		if f.Desc.PrimaryKey {
			pk = append(pk, f)
		}
	}
	return pk
}

// throughTable reports if the model has a many-to-many edge over the join
// table.
func (t *Type) throughTable(table string) bool {
	return slices.ContainsFunc(t.Edges, func(e *Edge) bool {
		return e.Rel == M2M && e.Through != nil && e.Through.Table == table
	})
}

// Column returns the column name of the field.
func (f *Field) Column() string { return f.Desc.Column() }

// Resolved reports if the edge target is a complete model.
func (e *Edge) Resolved() bool { return e.Type != nil }

// RefName returns the name of the reverse edge on the target.
func (e *Edge) RefName() string {
	if e.Desc != nil {
		return e.Desc.RefName
	}
	return ""
}

// Column returns the local foreign key column of M2O edges.
func (e *Edge) Column() string {
	if e.Desc != nil {
		return e.Desc.Field
	}
	return ""
}

// OnUpdate returns the ON UPDATE action of M2O edges.
func (e *Edge) OnUpdate() sqlschema.CascadeAction {
	if e.Desc != nil {
		return e.Desc.OnUpdate
	}
	return ""
}

// OnDelete returns the ON DELETE action of M2O edges.
func (e *Edge) OnDelete() sqlschema.CascadeAction {
	if e.Desc != nil {
		return e.Desc.OnDelete
	}
	return ""
}

// M2M indicates if this edge is M2M edge.
func (e *Edge) M2M() bool { return e.Rel == M2M }

// M2O indicates if this edge is M2O edge.
func (e *Edge) M2O() bool { return e.Rel == M2O }

// O2M indicates if this edge is O2M edge.
func (e *Edge) O2M() bool { return e.Rel == O2M }

// Target returns the name of the target model.
func (e *Edge) Target() string {
	if e.Type != nil {
		return e.Type.Name
	}
	return e.To.Name
}

// Rel is a relation type of an edge.
type Rel int

// Relation types.
const (
	Unk Rel = iota // Unknown.
	O2M            // One to many, the virtual side of M2O.
	M2O            // Many to one / foreign key.
	M2M            // Many to many.
)

// String returns the relation name.
func (r Rel) String() string {
	s := "Unknown"
	switch r {
	case O2M:
		s = "O2M"
	case M2O:
		s = "M2O"
	case M2M:
		s = "M2M"
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (r Rel) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
