package load

import (
	"fmt"
	"slices"
	"strings"

	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"

	"github.com/syssam/veloxconv/schema/field"
)

var (
	textTypes     = []string{"text", "tinytext", "mediumtext", "longtext", "clob", "ntext"}
	bigIntTypes   = []string{"bigint", "int8", "bigserial", "serial8"}
	smallIntTypes = []string{"smallint", "tinyint", "int2", "int1", "smallserial", "serial2"}
	clockTypes    = []string{"time", "timetz", "time with time zone", "time without time zone"}
)

// TypeTag returns the column-type tag of c. Types without a field
// counterpart (json, uuid, binary, enum, spatial) yield their lower-cased
// type name, which has no constructor.
func TypeTag(c *schema.Column) string {
	if c.Type == nil || c.Type.Type == nil {
		return ""
	}
	switch t := c.Type.Type.(type) {
	case *schema.IntegerType:
		return integerTag(t.T)
	case *postgres.SerialType:
		return integerTag(t.T)
	case *schema.StringType:
		if slices.Contains(textTypes, strings.ToLower(t.T)) {
			return field.TagText
		}
		return field.TagString
	case *schema.DecimalType:
		return field.TagDecimal
	case *schema.FloatType:
		return field.TagFloat
	case *schema.TimeType:
		n := strings.ToLower(t.T)
		switch {
		case n == "date":
			return field.TagDate
		case slices.Contains(clockTypes, n):
			return field.TagTime
		default:
			return field.TagDateTime
		}
	case *schema.BoolType:
		return field.TagBoolean
	case *schema.JSONType:
		return strings.ToLower(t.T)
	case *schema.UUIDType:
		return strings.ToLower(t.T)
	case *schema.BinaryType:
		return strings.ToLower(t.T)
	case *schema.EnumType:
		return "enum"
	case *schema.UnsupportedType:
		return strings.ToLower(t.T)
	}
	if raw := c.Type.Raw; raw != "" {
		return strings.ToLower(raw)
	}
	return strings.ToLower(strings.TrimPrefix(fmt.Sprintf("%T", c.Type.Type), "*"))
}

func integerTag(t string) string {
	switch n := strings.ToLower(t); {
	case slices.Contains(bigIntTypes, n):
		return field.TagBigInteger
	case slices.Contains(smallIntTypes, n):
		return field.TagSmallInteger
	default:
		return field.TagInteger
	}
}
