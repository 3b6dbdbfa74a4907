package field

import (
	"errors"
	"fmt"
)

// A Descriptor for field configuration.
type Descriptor struct {
	Name          string    // field name.
	Info          *TypeInfo // field type info.
	StorageKey    string    // column name, empty if it equals the field name.
	PrimaryKey    bool      // primary key column.
	Increment     bool      // auto-incremented column.
	Index         bool      // single-column index.
	Unique        bool      // unique column.
	Nullable      *bool     // nullable column, nil if unset.
	Default       any       // literal default value.
	ServerDefault string    // database default expression.
	Size          int       // max length of string fields.
	Precision     int       // total digits of decimal fields.
	Scale         int       // fractional digits of decimal fields.
	Err           error
}

// Column returns the column name of the field.
func (d *Descriptor) Column() string {
	if d.StorageKey != "" {
		return d.StorageKey
	}
	return d.Name
}

// IsNullable reports if the column was declared nullable.
func (d *Descriptor) IsNullable() bool {
	return d.Nullable != nil && *d.Nullable
}

// Builder is the builder shared by all field types.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, t Type) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Info: &TypeInfo{Type: t}}}
}

// Bool returns a new Field with type bool.
func Bool(name string) *Builder { return newBuilder(name, TypeBool) }

// Int returns a new Field with type int.
func Int(name string) *Builder { return newBuilder(name, TypeInt) }

// Int64 returns a new Field with type int64.
func Int64(name string) *Builder { return newBuilder(name, TypeInt64) }

// Float returns a new Field with type float64.
func Float(name string) *Builder { return newBuilder(name, TypeFloat) }

// Decimal returns a new fixed-point numeric Field.
func Decimal(name string) *Builder { return newBuilder(name, TypeDecimal) }

// String returns a new Field with type string.
func String(name string) *Builder { return newBuilder(name, TypeString) }

// Text returns a new string field without a size limit.
func Text(name string) *Builder { return newBuilder(name, TypeText) }

// Date returns a new calendar date Field.
func Date(name string) *Builder { return newBuilder(name, TypeDate) }

// Time returns a new Field with type timestamp.
func Time(name string) *Builder { return newBuilder(name, TypeTime) }

// Clock returns a new time-of-day Field.
func Clock(name string) *Builder { return newBuilder(name, TypeClock) }

// StorageKey sets the storage key (column name) of the field.
func (b *Builder) StorageKey(key string) *Builder {
	b.desc.StorageKey = key
	return b
}

// PrimaryKey marks the field as the primary key column.
func (b *Builder) PrimaryKey() *Builder {
	b.desc.PrimaryKey = true
	return b
}

// AutoIncrement marks the field as auto-incremented.
func (b *Builder) AutoIncrement() *Builder {
	if !b.desc.Info.Type.Integer() {
		b.desc.Err = errors.Join(b.desc.Err, fmt.Errorf("field %q: auto increment on non-integer type %s", b.desc.Name, b.desc.Info))
	}
	b.desc.Increment = true
	return b
}

// Index adds a single-column index on the field.
func (b *Builder) Index() *Builder {
	b.desc.Index = true
	return b
}

// Unique makes the field unique within all vertices in the graph.
func (b *Builder) Unique() *Builder {
	b.desc.Unique = true
	return b
}

// Nillable marks the column as nullable.
func (b *Builder) Nillable() *Builder {
	null := true
	b.desc.Nullable = &null
	return b
}

// Default sets the literal default value of the field.
func (b *Builder) Default(v any) *Builder {
	b.desc.Default = v
	return b
}

// ServerDefault sets the default expression evaluated by the database.
func (b *Builder) ServerDefault(expr string) *Builder {
	b.desc.ServerDefault = expr
	return b
}

// MaxLen sets the maximum length of a string field.
func (b *Builder) MaxLen(n int) *Builder {
	if b.desc.Info.Type != TypeString {
		b.desc.Err = errors.Join(b.desc.Err, fmt.Errorf("field %q: max length on %s field", b.desc.Name, b.desc.Info))
	}
	if n <= 0 {
		b.desc.Err = errors.Join(b.desc.Err, fmt.Errorf("field %q: max length must be positive, got %d", b.desc.Name, n))
	}
	b.desc.Size = n
	return b
}

// Precision sets the total number of digits of a decimal field.
func (b *Builder) Precision(n int) *Builder {
	if b.desc.Info.Type != TypeDecimal {
		b.desc.Err = errors.Join(b.desc.Err, fmt.Errorf("field %q: precision on %s field", b.desc.Name, b.desc.Info))
	}
	b.desc.Precision = n
	return b
}

// Scale sets the number of fractional digits of a decimal field.
func (b *Builder) Scale(n int) *Builder {
	if b.desc.Info.Type != TypeDecimal {
		b.desc.Err = errors.Join(b.desc.Err, fmt.Errorf("field %q: scale on %s field", b.desc.Name, b.desc.Info))
	}
	b.desc.Scale = n
	return b
}

// Descriptor returns the field descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
