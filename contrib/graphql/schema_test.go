package graphql_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/veloxconv/compiler/gen"
	"github.com/syssam/veloxconv/compiler/load"
	"github.com/syssam/veloxconv/compiler/load/loadtest"
	"github.com/syssam/veloxconv/contrib/graphql"
)

func convert(t *testing.T, r *load.Registry) []*gen.Type {
	t.Helper()
	cfg := gen.MustNewConfig(gen.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	g, err := gen.NewGraph(cfg, r)
	require.NoError(t, err)
	_, err = g.ConvertAll()
	require.NoError(t, err)
	return g.Models()
}

func loadSchema(t *testing.T, sdl []byte) *ast.Schema {
	t.Helper()
	s, err := gqlparser.LoadSchema(&ast.Source{Name: "test.graphql", Input: string(sdl)})
	require.NoError(t, err)
	return s
}

func TestRender(t *testing.T) {
	sdl, err := graphql.Render(convert(t, loadtest.Constraints().Registry))
	require.NoError(t, err)
	s := loadSchema(t, sdl)

	user := s.Types["User"]
	require.NotNil(t, user)
	assert.Equal(t, ast.Object, user.Kind)
	assert.Equal(t, "ID!", user.Fields.ForName("id").Type.String())
	assert.Equal(t, "String", user.Fields.ForName("name").Type.String())
	assert.Equal(t, "Decimal", user.Fields.ForName("salary").Type.String())
	assert.Equal(t, "[Address!]!", user.Fields.ForName("addresses").Type.String())

	addr := s.Types["Address"]
	require.NotNil(t, addr)
	assert.Equal(t, "String!", addr.Fields.ForName("emailAddress").Type.String())
	assert.Equal(t, "User", addr.Fields.ForName("user").Type.String())
	assert.Nil(t, addr.Fields.ForName("userId"), "foreign key columns are edges")

	require.NotNil(t, s.Types["Decimal"])
	assert.Equal(t, ast.Scalar, s.Types["Decimal"].Kind)
	assert.Nil(t, s.Types["Query"])
	assert.NotContains(t, string(sdl), "goModel")
}

func TestRenderLoop(t *testing.T) {
	sdl, err := graphql.Render(convert(t, loadtest.Loop().Registry), graphql.WithQuery())
	require.NoError(t, err)
	s := loadSchema(t, sdl)

	user := s.Types["User"]
	require.NotNil(t, user)
	assert.Equal(t, "String", user.Fields.ForName("firstName").Type.String())
	assert.Equal(t, "Customer", user.Fields.ForName("userCustomer").Type.String())
	assert.Equal(t, "[Customer!]!", user.Fields.ForName("customers").Type.String())

	require.NotNil(t, s.Query)
	assert.Equal(t, "[User!]!", s.Query.Fields.ForName("users").Type.String())
	assert.Equal(t, "[Customer!]!", s.Query.Fields.ForName("customers").Type.String())
}

func TestRenderManyToMany(t *testing.T) {
	models := convert(t, loadtest.ManyToMany().Registry)

	sdl, err := graphql.Render(models)
	require.NoError(t, err)
	s := loadSchema(t, sdl)
	assert.Nil(t, s.Types["Association"])
	assert.Equal(t, "[Child!]!", s.Types["Parent"].Fields.ForName("children").Type.String())
	assert.Equal(t, "[Parent!]!", s.Types["Child"].Fields.ForName("parents").Type.String())

	sdl, err = graphql.Render(models, graphql.WithThroughModels())
	require.NoError(t, err)
	s = loadSchema(t, sdl)
	through := s.Types["Association"]
	require.NotNil(t, through)
	assert.Equal(t, "Parent!", through.Fields.ForName("parent").Type.String())
	assert.Equal(t, "Child!", through.Fields.ForName("child").Type.String())
}

func TestRenderModelPackage(t *testing.T) {
	sdl, err := graphql.Render(
		convert(t, loadtest.Constraints().Registry),
		graphql.WithModelPackage("github.com/org/project/velox"),
	)
	require.NoError(t, err)
	assert.Contains(t, string(sdl), "directive @goModel(model: String) on OBJECT")
	s := loadSchema(t, sdl)

	d := s.Types["User"].Directives.ForName("goModel")
	require.NotNil(t, d)
	assert.Equal(t, "github.com/org/project/velox.User", d.Arguments.ForName("model").Value.Raw)
	require.NotNil(t, s.Directives["goModel"])
}

func TestDocument(t *testing.T) {
	doc, err := graphql.Document(convert(t, loadtest.SelfRelation().Registry))
	require.NoError(t, err)

	user := doc.Definitions.ForName("User")
	require.NotNil(t, user)
	assert.Equal(t, "User", user.Fields.ForName("parent").Type.String())
	assert.Equal(t, "[User!]!", user.Fields.ForName("users").Type.String())
	assert.Equal(t, "ID!", user.Fields.ForName("userId").Type.String())
	assert.Equal(t, "String", user.Fields.ForName("email").Type.String())
}
