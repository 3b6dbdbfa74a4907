package field

import (
	"errors"
	"fmt"
)

// A Constructor builds a field descriptor named name from resolved params.
type Constructor func(name string, p Params) (*Descriptor, error)

// Constructors maps every supported source column-type tag to the
// constructor of its field type. Tags absent from the map have no
// counterpart field type.
var Constructors = map[string]Constructor{
	TagInteger:      newConstructor(TagInteger, Int),
	TagSmallInteger: newConstructor(TagSmallInteger, Int),
	TagBigInteger:   newConstructor(TagBigInteger, Int64),
	TagString:       newConstructor(TagString, String),
	TagText:         newConstructor(TagText, Text),
	TagFloat:        newConstructor(TagFloat, Float),
	TagDecimal:      newConstructor(TagDecimal, Decimal),
	TagDate:         newConstructor(TagDate, Date),
	TagDateTime:     newConstructor(TagDateTime, Time),
	TagTime:         newConstructor(TagTime, Clock),
	TagBoolean:      newConstructor(TagBoolean, Bool),
}

// Lookup returns the constructor registered for tag.
func Lookup(tag string) (Constructor, bool) {
	c, ok := Constructors[tag]
	return c, ok
}

func newConstructor(tag string, fn func(string) *Builder) Constructor {
	return func(name string, p Params) (*Descriptor, error) {
		b := fn(name)
		b.desc.Info.Tag = tag
		if err := apply(b, p); err != nil {
			return nil, err
		}
		d := b.Descriptor()
		if d.Info.Type == TypeDecimal && d.Precision > 0 && d.Scale > d.Precision {
			d.Err = errors.Join(d.Err, fmt.Errorf("field %q: scale %d exceeds precision %d", d.Name, d.Scale, d.Precision))
		}
		return d, d.Err
	}
}

// apply calls the builder method of every parameter set in p.
func apply(b *Builder, p Params) error {
	var errs []error
	setBool := func(name string, fn func() *Builder) {
		v, err := p.Bool(name)
		if err != nil {
			errs = append(errs, err)
			return
		}
		if v {
			fn()
		}
	}
	setInt := func(name string, fn func(int) *Builder) {
		if !p.Has(name) || p[name] == nil {
			return
		}
		v, err := p.Int(name)
		if err != nil {
			errs = append(errs, err)
			return
		}
		fn(v)
	}
	key, err := p.String(ParamName)
	if err != nil {
		errs = append(errs, err)
	}
	if key != "" && key != b.desc.Name {
		b.StorageKey(key)
	}
	setBool(ParamPrimaryKey, b.PrimaryKey)
	setBool(ParamAutoincrement, b.AutoIncrement)
	setBool(ParamIndex, b.Index)
	setBool(ParamUnique, b.Unique)
	setBool(ParamNullable, b.Nillable)
	if v := p[ParamDefault]; v != nil {
		b.Default(v)
	}
	expr, err := p.String(ParamServerDefault)
	if err != nil {
		errs = append(errs, err)
	}
	if expr != "" {
		b.ServerDefault(expr)
	}
	setInt(ParamMaxLength, b.MaxLen)
	setInt(ParamMaxDigits, b.Precision)
	setInt(ParamDecimalPlaces, b.Scale)
	return errors.Join(errs...)
}
