package edge

import (
	"errors"
	"fmt"

	"github.com/syssam/veloxconv/dialect/sqlschema"
	"github.com/syssam/veloxconv/schema"
	"github.com/syssam/veloxconv/schema/field"
)

// Kind is the kind of a relation edge.
type Kind uint8

// Relation kinds.
const (
	KindInvalid Kind = iota
	KindForeignKey
	KindManyToMany
)

// String returns the builder name of the kind.
func (k Kind) String() string {
	switch k {
	case KindForeignKey:
		return "ForeignKey"
	case KindManyToMany:
		return "ManyToMany"
	default:
		return "Invalid"
	}
}

// A Descriptor for edge configuration.
type Descriptor struct {
	Kind     Kind
	Name     string // edge name.
	Type     string // target model name.
	Field    string // foreign key column key, foreign key edges only.
	RefName  string // related name of the reverse edge on the target.
	Unique   bool   // at most one target.
	Nullable bool
	OnUpdate sqlschema.CascadeAction
	OnDelete sqlschema.CascadeAction
	Through  *struct{ N, T string } // join table and through model name.
	Err      error
}

// Builder for edges.
type Builder struct {
	desc *Descriptor
}

// ForeignKey returns a many-to-one edge named name to the model t. t is a
// model name or a method expression such as User.Type.
//
//	edge.ForeignKey("user", User.Type).Field("user_id").Ref("addresses")
func ForeignKey(name string, t any) *Builder {
	return &Builder{desc: &Descriptor{Kind: KindForeignKey, Name: name, Type: schema.TypeName(t), Unique: true}}
}

// ManyToMany returns a many-to-many edge named name to the model t.
//
//	edge.ManyToMany("children", Child.Type).Through("association", Association.Type)
func ManyToMany(name string, t any) *Builder {
	return &Builder{desc: &Descriptor{Kind: KindManyToMany, Name: name, Type: schema.TypeName(t)}}
}

// Field sets the foreign key column of the edge.
func (b *Builder) Field(f string) *Builder {
	if b.desc.Kind != KindForeignKey {
		b.desc.Err = errors.Join(b.desc.Err, fmt.Errorf("edge %q: foreign key column on %s edge", b.desc.Name, b.desc.Kind))
	}
	b.desc.Field = f
	return b
}

// Ref sets the name of the reverse edge registered on the target.
func (b *Builder) Ref(ref string) *Builder {
	b.desc.RefName = ref
	return b
}

// Through sets the join table and the through model of a many-to-many edge.
func (b *Builder) Through(name string, t any) *Builder {
	if b.desc.Kind != KindManyToMany {
		b.desc.Err = errors.Join(b.desc.Err, fmt.Errorf("edge %q: through model on %s edge", b.desc.Name, b.desc.Kind))
	}
	b.desc.Through = &struct{ N, T string }{N: name, T: schema.TypeName(t)}
	return b
}

// OnUpdate sets the ON UPDATE action of the foreign key.
func (b *Builder) OnUpdate(a sqlschema.CascadeAction) *Builder {
	b.desc.OnUpdate = a
	return b
}

// OnDelete sets the ON DELETE action of the foreign key.
func (b *Builder) OnDelete(a sqlschema.CascadeAction) *Builder {
	b.desc.OnDelete = a
	return b
}

// Nillable marks the foreign key column as nullable.
func (b *Builder) Nillable() *Builder {
	b.desc.Nullable = true
	return b
}

// Descriptor returns the edge descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

// Params holds the resolved parameters of one relation.
type Params = field.Params

// Relation parameter names.
const (
	ParamTo           = "to"
	ParamName         = "name"
	ParamRelatedName  = "related_name"
	ParamOnUpdate     = "onupdate"
	ParamOnDelete     = "ondelete"
	ParamNullable     = "nullable"
	ParamThrough      = "through"
	ParamThroughTable = "through_table"
)

// A Constructor builds an edge descriptor named name from resolved params.
type Constructor func(name string, p Params) (*Descriptor, error)

// Constructors holds the relation constructors by kind.
var Constructors = map[Kind]Constructor{
	KindForeignKey: func(name string, p Params) (*Descriptor, error) {
		return construct(ForeignKey, name, p)
	},
	KindManyToMany: func(name string, p Params) (*Descriptor, error) {
		return construct(ManyToMany, name, p)
	},
}

func construct(fn func(string, any) *Builder, name string, p Params) (*Descriptor, error) {
	var errs []error
	str := func(k string) string {
		s, err := p.String(k)
		if err != nil {
			errs = append(errs, err)
		}
		return s
	}
	to := str(ParamTo)
	if to == "" {
		return nil, fmt.Errorf("edge %q: missing target model", name)
	}
	b := fn(name, to)
	if ref := str(ParamRelatedName); ref != "" {
		b.Ref(ref)
	}
	switch b.desc.Kind {
	case KindForeignKey:
		if col := str(ParamName); col != "" {
			b.Field(col)
		}
		for k, set := range map[string]func(sqlschema.CascadeAction) *Builder{ParamOnUpdate: b.OnUpdate, ParamOnDelete: b.OnDelete} {
			a, err := sqlschema.ParseCascadeAction(str(k))
			if err != nil {
				errs = append(errs, err)
				continue
			}
			set(a)
		}
		null, err := p.Bool(ParamNullable)
		if err != nil {
			errs = append(errs, err)
		}
		if null {
			b.Nillable()
		}
	case KindManyToMany:
		if t := str(ParamThrough); t != "" {
			b.Through(str(ParamThroughTable), t)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return b.desc, b.desc.Err
}
