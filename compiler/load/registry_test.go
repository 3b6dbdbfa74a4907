package load_test

import (
	"testing"

	"ariga.io/atlas/sql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxconv/compiler/load"
	"github.com/syssam/veloxconv/compiler/load/loadtest"
)

func TestRegistry(t *testing.T) {
	f := loadtest.Constraints()
	r := f.Registry
	require.Len(t, r.Entities(), 2)
	assert.Equal(t, "User", r.Entities()[0].Name)

	e, ok := r.ByTable("addresses")
	require.True(t, ok)
	assert.Equal(t, "Address", e.Name)
	_, ok = r.Entity("Nope")
	assert.False(t, ok)

	err := r.Add(&load.Entity{Name: "User", Table: schema.NewTable("people")})
	require.EqualError(t, err, `load: duplicate entity "User"`)
	err = r.Add(&load.Entity{Name: "Ghost"})
	require.EqualError(t, err, `load: entity "Ghost" is not bound to a table`)
	err = r.Add(&load.Entity{Table: schema.NewTable("ghosts")})
	require.EqualError(t, err, `load: entity without a name (table "ghosts")`)
}

func TestRegistryForeignKey(t *testing.T) {
	f := loadtest.Constraints()
	addr := f.Entity("Address")
	fk, col, err := f.Registry.ForeignKey(addr, addr.Relationships[0])
	require.NoError(t, err)
	assert.Equal(t, "user_id", col.Name)
	assert.Equal(t, "users", fk.RefTable.Name)

	loop := loadtest.Loop()
	user := loop.Entity("User")
	fk, col, err = loop.Registry.ForeignKey(user, user.Relationships[0])
	require.NoError(t, err)
	assert.Equal(t, "CUSTOMER_ID", col.Name)
	assert.Equal(t, "customer", fk.RefTable.Name)

	_, _, err = loop.Registry.ForeignKey(user, &load.Relationship{Name: "x", Target: "Customer", Column: "EMAIL"})
	require.EqualError(t, err, `load: relationship "x": column "EMAIL" has no foreign key`)
	_, _, err = loop.Registry.ForeignKey(user, &load.Relationship{Name: "x", Target: "Customer", Column: "MISSING"})
	require.Error(t, err)
	_, err = loop.Registry.Target(&load.Relationship{Name: "x", Target: "Vendor"})
	require.EqualError(t, err, `load: relationship "x": unknown target entity "Vendor"`)

	m2m := loadtest.ManyToMany()
	parent := m2m.Entity("Parent")
	_, _, err = m2m.Registry.ForeignKey(parent, &load.Relationship{Name: "child", Target: "Child"})
	require.EqualError(t, err, `load: relationship "child": no foreign key from "left" to "right"`)
}
