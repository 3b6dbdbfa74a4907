package schema

import "reflect"

// Schema is embedded by model declarations. Its Type method gives edge
// builders a typed handle to the target model:
//
//	type User struct{ schema.Schema }
//
//	edge.ForeignKey("owner", User.Type)
type Schema struct{}

// Type is a marker method used to reference a model by value.
func (Schema) Type() {}

// TypeName returns the model name referenced by t. t is either a model
// name or a method expression such as User.Type.
func TypeName(t any) string {
	switch t := t.(type) {
	case string:
		return t
	case nil:
		return ""
	}
	rt := reflect.TypeOf(t)
	if rt.Kind() == reflect.Func && rt.NumIn() > 0 {
		rt = rt.In(0)
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt.Name()
}
