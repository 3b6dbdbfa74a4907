package field_test

import (
	"testing"

	"github.com/syssam/veloxconv/schema/field"

	"github.com/stretchr/testify/assert"
)

func TestInt(t *testing.T) {
	fd := field.Int("id").
		PrimaryKey().
		AutoIncrement().
		Descriptor()
	assert.Equal(t, "id", fd.Name)
	assert.Equal(t, field.TypeInt, fd.Info.Type)
	assert.True(t, fd.PrimaryKey)
	assert.True(t, fd.Increment)
	assert.NoError(t, fd.Err)
	assert.Nil(t, fd.Nullable)
	assert.Equal(t, "id", fd.Column())
}

func TestString(t *testing.T) {
	fd := field.String("login").
		StorageKey("username").
		MaxLen(100).
		Unique().
		Nillable().
		Descriptor()
	assert.Equal(t, "login", fd.Name)
	assert.Equal(t, "username", fd.Column())
	assert.Equal(t, 100, fd.Size)
	assert.True(t, fd.Unique)
	assert.True(t, fd.IsNullable())
	assert.NoError(t, fd.Err)

	fd = field.String("name").MaxLen(0).Descriptor()
	assert.Error(t, fd.Err)
}

func TestBuilderTypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		desc *field.Descriptor
	}{
		{"increment_on_string", field.String("code").AutoIncrement().Descriptor()},
		{"max_len_on_text", field.Text("body").MaxLen(10).Descriptor()},
		{"precision_on_float", field.Float("ratio").Precision(5).Descriptor()},
		{"scale_on_int", field.Int("n").Scale(2).Descriptor()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.desc.Err)
		})
	}
}

func TestDecimal(t *testing.T) {
	fd := field.Decimal("price").Precision(10).Scale(2).Default(0.5).Descriptor()
	assert.Equal(t, field.TypeDecimal, fd.Info.Type)
	assert.Equal(t, 10, fd.Precision)
	assert.Equal(t, 2, fd.Scale)
	assert.Equal(t, 0.5, fd.Default)
	assert.NoError(t, fd.Err)
}

func TestTypeString(t *testing.T) {
	typ := field.TypeBool
	assert.Equal(t, "bool", typ.String())
	typ = field.TypeInvalid
	assert.Equal(t, "invalid", typ.String())
	typ = 42
	assert.Equal(t, "invalid", typ.String())
}

func TestFieldTypeInfo(t *testing.T) {
	tests := []struct {
		name     string
		typ      field.Type
		numeric  bool
		valid    bool
		constNam string
		builder  string
	}{
		{"TypeBool", field.TypeBool, false, true, "TypeBool", "Bool"},
		{"TypeInt", field.TypeInt, true, true, "TypeInt", "Int"},
		{"TypeInt64", field.TypeInt64, true, true, "TypeInt64", "Int64"},
		{"TypeFloat", field.TypeFloat, true, true, "TypeFloat", "Float"},
		{"TypeDecimal", field.TypeDecimal, true, true, "TypeDecimal", "Decimal"},
		{"TypeString", field.TypeString, false, true, "TypeString", "String"},
		{"TypeText", field.TypeText, false, true, "TypeText", "Text"},
		{"TypeDate", field.TypeDate, false, true, "TypeDate", "Date"},
		{"TypeTime", field.TypeTime, false, true, "TypeTime", "Time"},
		{"TypeClock", field.TypeClock, false, true, "TypeClock", "Clock"},
		{"TypeInvalid", field.TypeInvalid, false, false, "invalid", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.numeric, tt.typ.Numeric(), "Numeric() mismatch")
			assert.Equal(t, tt.valid, tt.typ.Valid(), "Valid() mismatch")
			assert.Equal(t, tt.constNam, tt.typ.ConstName(), "ConstName() mismatch")
			assert.Equal(t, tt.builder, tt.typ.Builder(), "Builder() mismatch")
		})
	}
}
