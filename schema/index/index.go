// Package index declares the table-level constraints of converted models.
//
//	index.UniqueColumns("name", "fullname")
package index

import (
	"fmt"
	"strings"
)

// A Descriptor for index configuration.
type Descriptor struct {
	Unique     bool     // unique index.
	Fields     []string // indexed columns.
	StorageKey string   // index name in the source schema, if any.
}

// Builder for indexes.
type Builder struct {
	desc *Descriptor
}

// Fields creates an index on the given columns.
func Fields(fields ...string) *Builder {
	return &Builder{desc: &Descriptor{Fields: fields}}
}

// UniqueColumns creates a unique constraint spanning the given columns.
func UniqueColumns(fields ...string) *Builder {
	return Fields(fields...).Unique()
}

// Unique sets the index to be unique.
func (b *Builder) Unique() *Builder {
	b.desc.Unique = true
	return b
}

// StorageKey sets the index name.
func (b *Builder) StorageKey(key string) *Builder {
	b.desc.StorageKey = key
	return b
}

// Descriptor returns the index descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

// String returns a textual form of the constraint.
func (d *Descriptor) String() string {
	kind := "Index"
	if d.Unique {
		kind = "UniqueColumns"
	}
	return fmt.Sprintf("%s(%s)", kind, strings.Join(d.Fields, ", "))
}
