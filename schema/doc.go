// Package schema provides the building blocks of converted model
// declarations.
//
// The subpackages hold the builders each declaration is made of:
//
//   - [field]: Field builders and the column-type mapping tables
//   - [edge]: Foreign key and many-to-many relation builders
//   - [index]: Multi-column unique constraints
//
// A converted model renders as:
//
//	type Address struct{ velox.Schema }
//
//	func (Address) Config() velox.Config {
//	    return velox.Config{Table: "addresses"}
//	}
//
//	func (Address) Fields() []velox.Field {
//	    return []velox.Field{
//	        field.Int("id").AutoIncrement().PrimaryKey(),
//	        field.String("email_address").MaxLen(255),
//	    }
//	}
//
//	func (Address) Edges() []velox.Edge {
//	    return []velox.Edge{
//	        edge.ForeignKey("user", User.Type).
//	            Field("user_id").
//	            Ref("addresses").
//	            OnUpdate(sqlschema.Cascade).
//	            OnDelete(sqlschema.Cascade).
//	            Nillable(),
//	    }
//	}
//
// Schema is the embeddable marker whose Type method lets builders reference
// models by value, as in User.Type above.
package schema
