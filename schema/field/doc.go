// Package field provides the field builders of converted models and the
// static tables that map source column types onto them.
//
// Field names are the attribute keys of the source entity. The column name
// is kept as a storage key when it differs:
//
//	field.Int64("user_id")                       // column user_id
//	field.String("login").StorageKey("username") // column username
//
// # Field Types
//
//	field.Int("count")
//	field.Int64("big_number")
//	field.Float("ratio")
//	field.Decimal("price").Precision(18).Scale(6)
//	field.String("name").MaxLen(255)
//	field.Text("description")
//	field.Bool("is_active")
//	field.Date("born_on")
//	field.Time("created_at")
//	field.Clock("opens_at")
//
// # Field Options
//
//	field.Int("id").
//	    PrimaryKey().     // primary key column
//	    AutoIncrement()   // integer types only
//
//	field.String("email").
//	    Unique().                 // unique constraint
//	    Index().                  // single-column index
//	    Nillable().               // nullable column
//	    Default("unknown").       // literal default
//	    ServerDefault("'none'")   // database default expression
//
// # Mapping Tables
//
// Constructors maps each source column-type tag to a Constructor, which
// builds a Descriptor from resolved Params:
//
//	build, ok := field.Lookup(field.TagBigInteger)
//	desc, err := build("id", field.Params{
//	    field.ParamPrimaryKey:    true,
//	    field.ParamAutoincrement: true,
//	})
//
// CommonParameters and TypeSpecificParameters declare which source
// attributes are read for each column, the value used when an attribute is
// unset, and the builder method that applies the parameter.
package field
