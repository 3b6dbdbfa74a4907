// Package loadtest provides source schemas shared by the converter tests.
package loadtest

import (
	"ariga.io/atlas/sql/schema"

	"github.com/syssam/veloxconv/compiler/load"
)

// Fixture is a source schema together with its mapped entities.
type Fixture struct {
	Schema   *schema.Schema
	Registry *load.Registry
}

// Entity returns the named entity, panicking if it does not exist.
func (f *Fixture) Entity(name string) *load.Entity {
	e, ok := f.Registry.Entity(name)
	if !ok {
		panic("loadtest: unknown entity " + name)
	}
	return e
}

func mustRegistry(entities ...*load.Entity) *load.Registry {
	r, err := load.NewRegistry(entities...)
	if err != nil {
		panic(err)
	}
	return r
}

// Constraints returns users and addresses: a decimal salary, a composite
// unique constraint and a cascading foreign key.
func Constraints() *Fixture {
	userID := schema.NewIntColumn("id", "integer")
	name := schema.NewNullStringColumn("name", "varchar")
	fullname := schema.NewNullStringColumn("fullname", "varchar")
	users := schema.NewTable("users").
		AddColumns(
			userID,
			name,
			fullname,
			schema.NewNullStringColumn("nickname", "varchar"),
			schema.NewDecimalColumn("salary", "decimal").SetNull(true),
		).
		SetPrimaryKey(schema.NewPrimaryKey(userID)).
		AddIndexes(schema.NewUniqueIndex("_uc_name_fullname").AddColumns(name, fullname))

	addrID := schema.NewIntColumn("id", "integer")
	userRef := schema.NewNullIntColumn("user_id", "integer")
	addrs := schema.NewTable("addresses").
		AddColumns(
			addrID,
			schema.NewStringColumn("email_address", "varchar"),
			userRef,
		).
		SetPrimaryKey(schema.NewPrimaryKey(addrID)).
		AddForeignKeys(
			schema.NewForeignKey("addresses_user_id_fkey").
				AddColumns(userRef).
				SetRefTable(users).
				AddRefColumns(userID).
				SetOnUpdate(schema.Cascade).
				SetOnDelete(schema.Cascade),
		)
	return &Fixture{
		Schema: schema.New("main").AddTables(users, addrs),
		Registry: mustRegistry(
			&load.Entity{
				Name:  "User",
				Table: users,
				Relationships: []*load.Relationship{
					{Name: "addresses", Direction: load.OneToMany, Target: "Address", BackPopulates: "user"},
				},
			},
			&load.Entity{
				Name:  "Address",
				Table: addrs,
				Relationships: []*load.Relationship{
					{Name: "user", Direction: load.ManyToOne, Target: "User", BackPopulates: "addresses"},
				},
			},
		),
	}
}

func userTable(name string, id *schema.Column) *schema.Table {
	return schema.NewTable(name).
		AddColumns(
			id,
			schema.NewNullStringColumn("FIRST_NAME", "varchar", schema.StringSize(255)),
			schema.NewNullStringColumn("LAST_NAME", "varchar", schema.StringSize(255)),
			schema.NewNullStringColumn("USERNAME", "varchar", schema.StringSize(255)),
			schema.NewNullStringColumn("PASSWORD", "varchar", schema.StringSize(40)),
			schema.NewNullStringColumn("EMAIL", "varchar", schema.StringSize(255)),
		).
		SetPrimaryKey(schema.NewPrimaryKey(id))
}

// SelfRelation returns a user table whose PARENT_ID references itself.
func SelfRelation() *Fixture {
	id := schema.NewIntColumn("USER_ID", "integer")
	parentID := schema.NewNullIntColumn("PARENT_ID", "integer")
	users := userTable("user", id).AddColumns(parentID)
	users.AddIndexes(schema.NewIndex("ix_user_PARENT_ID").AddColumns(parentID))
	users.AddForeignKeys(
		schema.NewForeignKey("user_parent_fkey").
			AddColumns(parentID).
			SetRefTable(users).
			AddRefColumns(id),
	)
	return &Fixture{
		Schema: schema.New("main").AddTables(users),
		Registry: mustRegistry(&load.Entity{
			Name:  "User",
			Table: users,
			Relationships: []*load.Relationship{
				{Name: "parent", Direction: load.ManyToOne, Target: "User"},
			},
		}),
	}
}

// Loop returns users and customers referencing each other.
func Loop() *Fixture {
	userID := schema.NewIntColumn("USER_ID", "integer")
	customerFK := schema.NewNullIntColumn("CUSTOMER_ID", "integer")
	users := userTable("user", userID).AddColumns(customerFK)

	customerID := schema.NewIntColumn("CUSTOMER_ID", "integer")
	sellerFK := schema.NewNullIntColumn("SELLER_ID", "integer")
	customers := schema.NewTable("customer").
		AddColumns(
			customerID,
			schema.NewNullStringColumn("NAME", "varchar", schema.StringSize(60)),
			schema.NewNullStringColumn("ORGNO", "varchar", schema.StringSize(20)),
			schema.NewNullIntColumn("TYPE", "integer"),
			schema.NewNullIntColumn("STATUS", "integer"),
			sellerFK,
			schema.NewNullStringColumn("PHONE", "varchar", schema.StringSize(20)),
			schema.NewNullStringColumn("FAX", "varchar", schema.StringSize(20)),
		).
		SetPrimaryKey(schema.NewPrimaryKey(customerID))

	users.AddIndexes(schema.NewIndex("ix_user_CUSTOMER_ID").AddColumns(customerFK))
	users.AddForeignKeys(
		schema.NewForeignKey("user_customer_fkey").
			AddColumns(customerFK).
			SetRefTable(customers).
			AddRefColumns(customerID),
	)
	customers.AddIndexes(schema.NewIndex("ix_customer_SELLER_ID").AddColumns(sellerFK))
	customers.AddForeignKeys(
		schema.NewForeignKey("customer_seller_fkey").
			AddColumns(sellerFK).
			SetRefTable(users).
			AddRefColumns(userID),
	)
	return &Fixture{
		Schema: schema.New("main").AddTables(users, customers),
		Registry: mustRegistry(
			&load.Entity{
				Name:  "User",
				Table: users,
				Relationships: []*load.Relationship{
					{Name: "user_customer", Direction: load.ManyToOne, Target: "Customer", Column: "CUSTOMER_ID"},
				},
			},
			&load.Entity{
				Name:  "Customer",
				Table: customers,
				Relationships: []*load.Relationship{
					{Name: "seller", Direction: load.ManyToOne, Target: "User", Column: "SELLER_ID"},
				},
			},
		),
	}
}

// ManyToMany returns parents and children joined by an association table.
func ManyToMany() *Fixture {
	parentID := schema.NewIntColumn("id", "integer")
	parents := schema.NewTable("left").
		AddColumns(parentID).
		SetPrimaryKey(schema.NewPrimaryKey(parentID))
	childID := schema.NewIntColumn("id", "integer")
	children := schema.NewTable("right").
		AddColumns(childID).
		SetPrimaryKey(schema.NewPrimaryKey(childID))

	leftID := schema.NewIntColumn("left_id", "integer")
	rightID := schema.NewIntColumn("right_id", "integer")
	assoc := schema.NewTable("association").
		AddColumns(leftID, rightID).
		SetPrimaryKey(schema.NewPrimaryKey(leftID, rightID)).
		AddForeignKeys(
			schema.NewForeignKey("association_left_fkey").
				AddColumns(leftID).
				SetRefTable(parents).
				AddRefColumns(parentID).
				SetOnDelete(schema.Cascade),
			schema.NewForeignKey("association_right_fkey").
				AddColumns(rightID).
				SetRefTable(children).
				AddRefColumns(childID).
				SetOnDelete(schema.Cascade),
		)
	return &Fixture{
		Schema: schema.New("main").AddTables(parents, children, assoc),
		Registry: mustRegistry(
			&load.Entity{
				Name:  "Parent",
				Table: parents,
				Relationships: []*load.Relationship{
					{Name: "children", Direction: load.ManyToMany, Target: "Child", Secondary: "association", BackPopulates: "parents"},
				},
			},
			&load.Entity{
				Name:  "Child",
				Table: children,
				Relationships: []*load.Relationship{
					{Name: "parents", Direction: load.ManyToMany, Target: "Parent", Secondary: "association", BackPopulates: "children"},
				},
			},
		),
	}
}

// SelfJoin returns users joined to themselves by a friendships table. The
// entities are bound without mappings, so relationships are inferred.
func SelfJoin() *Fixture {
	id := schema.NewIntColumn("id", "integer")
	users := schema.NewTable("users").
		AddColumns(id, schema.NewStringColumn("name", "varchar")).
		SetPrimaryKey(schema.NewPrimaryKey(id))
	userID := schema.NewIntColumn("user_id", "integer")
	friendID := schema.NewIntColumn("friend_id", "integer")
	friendships := schema.NewTable("friendships").
		AddColumns(userID, friendID).
		SetPrimaryKey(schema.NewPrimaryKey(userID, friendID)).
		AddForeignKeys(
			schema.NewForeignKey("friendships_user_fkey").
				AddColumns(userID).
				SetRefTable(users).
				AddRefColumns(id),
			schema.NewForeignKey("friendships_friend_fkey").
				AddColumns(friendID).
				SetRefTable(users).
				AddRefColumns(id),
		)
	s := schema.New("main").AddTables(users, friendships)
	r, err := (&load.MappingFile{}).Bind(s)
	if err != nil {
		panic(err)
	}
	return &Fixture{Schema: s, Registry: r}
}
