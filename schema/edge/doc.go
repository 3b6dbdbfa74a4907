// Package edge provides the relation builders of converted models.
//
// # Edge Kinds
//
// A many-to-one relation is declared on the model holding the foreign key:
//
//	edge.ForeignKey("user", User.Type).
//	    Field("user_id").        // foreign key column
//	    Ref("addresses").        // reverse edge on User
//	    OnDelete(sqlschema.Cascade).
//	    Nillable()
//
// A many-to-many relation goes through a join table, represented by a
// through model:
//
//	edge.ManyToMany("children", Child.Type).
//	    Through("association", Association.Type).
//	    Ref("parents")
//
// # Reverse Edges
//
// Ref names the edge the target model gets back. When it is empty the
// converter derives the reverse name from the owner model.
//
// # Constructors
//
// Constructors builds descriptors from resolved relation Params, keyed by
// Kind:
//
//	desc, err := edge.Constructors[edge.KindForeignKey]("user", edge.Params{
//	    edge.ParamTo:          "User",
//	    edge.ParamName:        "user_id",
//	    edge.ParamRelatedName: "addresses",
//	    edge.ParamOnDelete:    "CASCADE",
//	})
package edge
