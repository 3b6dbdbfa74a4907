package field

// A Type represents a field type.
type Type uint8

// List of field types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeInt
	TypeInt64
	TypeFloat
	TypeDecimal
	TypeString
	TypeText
	TypeDate
	TypeTime
	TypeClock
	endTypes
)

var (
	typeNames = [...]string{
		TypeInvalid: "invalid",
		TypeBool:    "bool",
		TypeInt:     "int",
		TypeInt64:   "int64",
		TypeFloat:   "float64",
		TypeDecimal: "decimal",
		TypeString:  "string",
		TypeText:    "text",
		TypeDate:    "date",
		TypeTime:    "time.Time",
		TypeClock:   "clock",
	}
	constNames = [...]string{
		TypeBool:    "TypeBool",
		TypeInt:     "TypeInt",
		TypeInt64:   "TypeInt64",
		TypeFloat:   "TypeFloat",
		TypeDecimal: "TypeDecimal",
		TypeString:  "TypeString",
		TypeText:    "TypeText",
		TypeDate:    "TypeDate",
		TypeTime:    "TypeTime",
		TypeClock:   "TypeClock",
	}
	// builders holds the package-level builder function for each type.
	builders = [...]string{
		TypeBool:    "Bool",
		TypeInt:     "Int",
		TypeInt64:   "Int64",
		TypeFloat:   "Float",
		TypeDecimal: "Decimal",
		TypeString:  "String",
		TypeText:    "Text",
		TypeDate:    "Date",
		TypeTime:    "Time",
		TypeClock:   "Clock",
	}
)

// String returns the string representation of a type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t >= TypeInt && t <= TypeDecimal
}

// Integer reports if the given type is an integer type.
func (t Type) Integer() bool {
	return t == TypeInt || t == TypeInt64
}

// Valid reports if the given type is a known type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// ConstName returns the constant name of an info type.
func (t Type) ConstName() string {
	if !t.Valid() {
		return typeNames[TypeInvalid]
	}
	return constNames[t]
}

// Builder returns the name of the builder function that declares a field
// of this type, for example "Int64" for field.Int64.
func (t Type) Builder() string {
	if !t.Valid() {
		return ""
	}
	return builders[t]
}

// TypeInfo holds the information regarding field type.
type TypeInfo struct {
	Type Type
	// Tag is the source column-type tag the field was built from.
	Tag string
}

// String returns the string representation of a type.
func (t TypeInfo) String() string {
	return t.Type.String()
}

// Numeric reports if the type is a numeric type.
func (t TypeInfo) Numeric() bool { return t.Type.Numeric() }

// Valid reports if the type is a known type.
func (t TypeInfo) Valid() bool { return t.Type.Valid() }
