// Package velox holds the interfaces converted model declarations implement
// and the function turning a declaration into its descriptors.
//
//	type User struct{ velox.Schema }
//
//	func (User) Config() velox.Config { return velox.Config{Table: "users"} }
//
//	func (User) Fields() []velox.Field {
//	    return []velox.Field{
//	        field.Int("id").AutoIncrement().PrimaryKey(),
//	    }
//	}
package velox

import (
	"github.com/syssam/veloxconv/schema"
	"github.com/syssam/veloxconv/schema/edge"
	"github.com/syssam/veloxconv/schema/field"
	"github.com/syssam/veloxconv/schema/index"
)

type (
	// Interface is implemented by every model declaration.
	Interface interface {
		// Type is a dummy method used to reference the model by value.
		Type()
		// Config returns the table settings of the model.
		Config() Config
		// Fields returns the column fields of the model.
		Fields() []Field
		// Edges returns the relation edges of the model.
		Edges() []Edge
		// Indexes returns the multi-column constraints of the model.
		Indexes() []Index
	}

	// A Field is implemented by field builders.
	Field interface {
		Descriptor() *field.Descriptor
	}

	// An Edge is implemented by edge builders.
	Edge interface {
		Descriptor() *edge.Descriptor
	}

	// An Index is implemented by index builders.
	Index interface {
		Descriptor() *index.Descriptor
	}

	// Config holds the table settings of a model.
	Config struct {
		// Table is the name of the database table.
		Table string
	}

	// Schema is the default implementation of Interface. Embed it in model
	// declarations and override the methods needed.
	Schema struct {
		schema.Schema
	}
)

// Config of the schema.
func (Schema) Config() Config { return Config{} }

// Fields of the schema.
func (Schema) Fields() []Field { return nil }

// Edges of the schema.
func (Schema) Edges() []Edge { return nil }

// Indexes of the schema.
func (Schema) Indexes() []Index { return nil }

var _ Interface = (*Schema)(nil)

// Model holds the descriptors of one model declaration.
type Model struct {
	Name    string
	Table   string
	Fields  []*field.Descriptor
	Edges   []*edge.Descriptor
	Indexes []*index.Descriptor
}

// Describe collects the descriptors of s. The errors recorded by the field
// and edge builders are returned as ValidationErrors.
func Describe(s Interface) (*Model, error) {
	m := &Model{
		Name:  schema.TypeName(s),
		Table: s.Config().Table,
	}
	var errs []error
	for _, f := range s.Fields() {
		d := f.Descriptor()
		if d.Err != nil {
			errs = append(errs, NewValidationError(m.Name+"."+d.Name, d.Err))
		}
		m.Fields = append(m.Fields, d)
	}
	for _, e := range s.Edges() {
		d := e.Descriptor()
		if d.Err != nil {
			errs = append(errs, NewValidationError(m.Name+"."+d.Name, d.Err))
		}
		m.Edges = append(m.Edges, d)
	}
	for _, i := range s.Indexes() {
		m.Indexes = append(m.Indexes, i.Descriptor())
	}
	if err := NewAggregateError(errs...); err != nil {
		return nil, err
	}
	return m, nil
}
