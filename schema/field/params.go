package field

import (
	"fmt"
	"maps"
	"slices"
)

// Source column-type tags recognized by the converter.
const (
	TagInteger      = "integer"
	TagSmallInteger = "small_integer"
	TagBigInteger   = "big_integer"
	TagString       = "string"
	TagText         = "text"
	TagFloat        = "float"
	TagDecimal      = "decimal"
	TagDate         = "date"
	TagDateTime     = "datetime"
	TagTime         = "time"
	TagBoolean      = "boolean"
)

// Parameter names shared by every field.
const (
	ParamName          = "name"
	ParamPrimaryKey    = "primary_key"
	ParamAutoincrement = "autoincrement"
	ParamIndex         = "index"
	ParamUnique        = "unique"
	ParamNullable      = "nullable"
	ParamDefault       = "default"
	ParamServerDefault = "server_default"
	ParamMaxLength     = "max_length"
	ParamMaxDigits     = "max_digits"
	ParamDecimalPlaces = "decimal_places"
)

// Param describes one field parameter: the source attribute it is read
// from, the value used when the attribute is unset, and the builder method
// that applies it.
type Param struct {
	Name    string
	Key     string
	Default any
	Method  string
	// Flag marks parameters whose builder method takes no argument and is
	// called only when the value is true.
	Flag bool
}

// IsDefault reports if v equals the parameter default.
func (p Param) IsDefault(v any) bool {
	return v == p.Default
}

// CommonParameters lists the parameters read for every column, in order.
var CommonParameters = []Param{
	{Name: ParamName, Key: "name", Default: nil, Method: "StorageKey"},
	{Name: ParamPrimaryKey, Key: "primary_key", Default: false, Method: "PrimaryKey", Flag: true},
	{Name: ParamAutoincrement, Key: "autoincrement", Default: false, Method: "AutoIncrement", Flag: true},
	{Name: ParamIndex, Key: "index", Default: false, Method: "Index", Flag: true},
	{Name: ParamUnique, Key: "unique", Default: false, Method: "Unique", Flag: true},
	{Name: ParamNullable, Key: "nullable", Default: nil, Method: "Nillable", Flag: true},
	{Name: ParamDefault, Key: "default", Default: nil, Method: "Default"},
	{Name: ParamServerDefault, Key: "server_default", Default: nil, Method: "ServerDefault"},
}

// TypeSpecificParameters lists the extra parameters read for some tags.
var TypeSpecificParameters = map[string][]Param{
	TagString: {
		{Name: ParamMaxLength, Key: "length", Default: 255, Method: "MaxLen"},
	},
	TagDecimal: {
		{Name: ParamMaxDigits, Key: "precision", Default: 18, Method: "Precision"},
		{Name: ParamDecimalPlaces, Key: "scale", Default: 6, Method: "Scale"},
	},
}

// LookupParam returns the parameter declaration for name, searching the
// common parameters and the type-specific parameters of tag.
func LookupParam(tag, name string) (Param, bool) {
	for _, p := range CommonParameters {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range TypeSpecificParameters[tag] {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// IsTypeSpecific reports if name is a type-specific parameter of tag.
func IsTypeSpecific(tag, name string) bool {
	for _, p := range TypeSpecificParameters[tag] {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Params holds the resolved parameter values of one field, keyed by
// parameter name.
type Params map[string]any

// Has reports if a value is set for name.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Bool returns the boolean value of name, false if unset.
func (p Params) Bool(name string) (bool, error) {
	switch v := p[name].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	default:
		return false, fmt.Errorf("field: parameter %q: expect bool, got %T", name, v)
	}
}

// String returns the string value of name, "" if unset.
func (p Params) String(name string) (string, error) {
	switch v := p[name].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("field: parameter %q: expect string, got %T", name, v)
	}
}

// Int returns the integer value of name, 0 if unset.
func (p Params) Int(name string) (int, error) {
	switch v := p[name].(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("field: parameter %q: %v is not an integer", name, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("field: parameter %q: expect int, got %T", name, v)
	}
}

// Names returns the parameter names in sorted order.
func (p Params) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

// Clone returns a shallow copy of the params.
func (p Params) Clone() Params {
	return maps.Clone(p)
}
