package edge_test

import (
	"testing"

	"github.com/syssam/veloxconv/dialect/sqlschema"
	"github.com/syssam/veloxconv/schema"
	"github.com/syssam/veloxconv/schema/edge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test schema types for edge testing.
type (
	User        struct{ schema.Schema }
	Child       struct{ schema.Schema }
	Association struct{ schema.Schema }
)

func TestForeignKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		build    func() *edge.Descriptor
		validate func(t *testing.T, desc *edge.Descriptor)
	}{
		{
			name: "basic_edge",
			build: func() *edge.Descriptor {
				return edge.ForeignKey("user", User.Type).Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, edge.KindForeignKey, desc.Kind)
				assert.Equal(t, "user", desc.Name)
				assert.Equal(t, "User", desc.Type)
				assert.True(t, desc.Unique)
				assert.False(t, desc.Nullable)
				assert.Empty(t, desc.Field)
				assert.Empty(t, desc.RefName)
				assert.Nil(t, desc.Through)
			},
		},
		{
			name: "cascade_edge",
			build: func() *edge.Descriptor {
				return edge.ForeignKey("user", "User").
					Field("user_id").
					Ref("addresses").
					OnUpdate(sqlschema.Cascade).
					OnDelete(sqlschema.SetNull).
					Nillable().
					Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, "user_id", desc.Field)
				assert.Equal(t, "addresses", desc.RefName)
				assert.Equal(t, sqlschema.Cascade, desc.OnUpdate)
				assert.Equal(t, sqlschema.SetNull, desc.OnDelete)
				assert.True(t, desc.Nullable)
				assert.NoError(t, desc.Err)
			},
		},
		{
			name: "through_on_foreign_key",
			build: func() *edge.Descriptor {
				return edge.ForeignKey("user", User.Type).Through("x", "X").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Error(t, desc.Err)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.validate(t, tt.build())
		})
	}
}

func TestManyToMany(t *testing.T) {
	desc := edge.ManyToMany("children", Child.Type).
		Through("association", Association.Type).
		Ref("parents").
		Descriptor()
	assert.Equal(t, edge.KindManyToMany, desc.Kind)
	assert.Equal(t, "Child", desc.Type)
	assert.False(t, desc.Unique)
	require.NotNil(t, desc.Through)
	assert.Equal(t, "association", desc.Through.N)
	assert.Equal(t, "Association", desc.Through.T)
	assert.Equal(t, "parents", desc.RefName)
	assert.NoError(t, desc.Err)

	desc = edge.ManyToMany("children", Child.Type).Field("child_id").Descriptor()
	assert.Error(t, desc.Err)
}

func TestConstructors(t *testing.T) {
	desc, err := edge.Constructors[edge.KindForeignKey]("user", edge.Params{
		edge.ParamTo:          "User",
		edge.ParamName:        "user_id",
		edge.ParamRelatedName: "addresses",
		edge.ParamOnUpdate:    "CASCADE",
		edge.ParamOnDelete:    "cascade",
		edge.ParamNullable:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "User", desc.Type)
	assert.Equal(t, "user_id", desc.Field)
	assert.Equal(t, "addresses", desc.RefName)
	assert.Equal(t, sqlschema.Cascade, desc.OnUpdate)
	assert.Equal(t, sqlschema.Cascade, desc.OnDelete)
	assert.True(t, desc.Nullable)

	desc, err = edge.Constructors[edge.KindManyToMany]("children", edge.Params{
		edge.ParamTo:           "Child",
		edge.ParamThrough:      "Association",
		edge.ParamThroughTable: "association",
		edge.ParamRelatedName:  "parents",
	})
	require.NoError(t, err)
	require.NotNil(t, desc.Through)
	assert.Equal(t, "Association", desc.Through.T)
	assert.Equal(t, "association", desc.Through.N)

	_, err = edge.Constructors[edge.KindForeignKey]("user", edge.Params{})
	require.EqualError(t, err, `edge "user": missing target model`)

	_, err = edge.Constructors[edge.KindForeignKey]("user", edge.Params{
		edge.ParamTo:       "User",
		edge.ParamOnDelete: "EXPLODE",
	})
	require.EqualError(t, err, `sqlschema: unknown cascade action "EXPLODE"`)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ForeignKey", edge.KindForeignKey.String())
	assert.Equal(t, "ManyToMany", edge.KindManyToMany.String())
	assert.Equal(t, "Invalid", edge.KindInvalid.String())
}
