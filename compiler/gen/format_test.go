package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"ariga.io/atlas/sql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/imports"

	"github.com/syssam/veloxconv/compiler/load"
	"github.com/syssam/veloxconv/compiler/load/loadtest"
)

func convertAll(t *testing.T, r *load.Registry, opts ...Option) *Graph {
	t.Helper()
	g := newGraph(t, r, opts...)
	_, err := g.ConvertAll()
	require.NoError(t, err)
	return g
}

func format(t *testing.T, g *Graph, name string, opts ...FormatOption) string {
	t.Helper()
	typ, ok := g.Lookup(name)
	require.True(t, ok, "model %s", name)
	b, err := g.Format(typ, opts...)
	require.NoError(t, err)
	return string(b)
}

func TestFormatConstraints(t *testing.T) {
	g := convertAll(t, loadtest.Constraints().Registry)

	code := format(t, g, "User")
	assert.Contains(t, code, DefaultHeader)
	assert.Contains(t, code, "package schema")
	assert.Contains(t, code, "// User holds the schema definition for the User entity.")
	assert.Contains(t, code, "type User struct {\n\tvelox.Schema\n}")
	assert.Contains(t, code, `return velox.Config{Table: "users"}`)
	assert.Contains(t, code, "func (User) Fields() []velox.Field {")
	assert.Contains(t, code, `field.Int("id").AutoIncrement().PrimaryKey(),`)
	assert.Contains(t, code, `field.String("name").Nillable().MaxLen(255),`)
	assert.Contains(t, code, `field.Decimal("salary").Nillable().Precision(18).Scale(6),`)
	assert.Contains(t, code, `index.UniqueColumns("name", "fullname"),`)
	assert.NotContains(t, code, "StorageKey")
	assert.NotContains(t, code, "Edges()", "virtual edges are not rendered")

	code = format(t, g, "Address")
	assert.Contains(t, code, `field.String("email_address").MaxLen(255),`)
	assert.Contains(t, code, `edge.ForeignKey("user", User.Type).Ref("addresses").OnUpdate(sqlschema.Cascade).OnDelete(sqlschema.Cascade).Field("user_id").Nillable(),`)
	assert.Contains(t, code, `"github.com/syssam/veloxconv/dialect/sqlschema"`)
	assert.NotContains(t, code, "Indexes()")
}

func TestFormatSkipNames(t *testing.T) {
	g := convertAll(t, loadtest.Constraints().Registry)

	code := format(t, g, "User", SkipNamesIfMatch(false))
	assert.Contains(t, code, `field.Int("id").AutoIncrement().StorageKey("id").PrimaryKey(),`)
	assert.Contains(t, code, `field.String("name").StorageKey("name").Nillable().MaxLen(255),`)

	code = format(t, g, "User", SkipNamesIfMatch(true))
	assert.NotContains(t, code, "StorageKey")
}

func TestFormatLoop(t *testing.T) {
	g := convertAll(t, loadtest.Loop().Registry)

	code := format(t, g, "User")
	assert.Contains(t, code, `field.Int("USER_ID").AutoIncrement().PrimaryKey(),`)
	assert.Contains(t, code, `field.String("PASSWORD").Nillable().MaxLen(40),`)
	assert.Contains(t, code, `edge.ForeignKey("user_customer", Customer.Type).Field("CUSTOMER_ID").Nillable(),`)
	assert.NotContains(t, code, "customers")

	code = format(t, g, "Customer")
	assert.Contains(t, code, `field.String("NAME").Nillable().MaxLen(60),`)
	assert.Contains(t, code, `field.Int("TYPE").Nillable(),`)
	assert.Contains(t, code, `edge.ForeignKey("seller", User.Type).Field("SELLER_ID").Nillable(),`)
	assert.NotContains(t, code, "sqlschema")
}

func TestFormatManyToMany(t *testing.T) {
	g := convertAll(t, loadtest.ManyToMany().Registry)

	code := format(t, g, "Parent")
	assert.Contains(t, code, `edge.ManyToMany("children", Child.Type).Through("association", Association.Type).Ref("parents"),`)

	code = format(t, g, "Child")
	assert.NotContains(t, code, "Edges()")

	code = format(t, g, "Association")
	assert.Contains(t, code, "type Association struct {")
	assert.Contains(t, code, `return velox.Config{Table: "association"}`)
	assert.NotContains(t, code, "Fields()")
	assert.NotContains(t, code, "Edges()")
}

func TestFormatDefaults(t *testing.T) {
	id := schema.NewIntColumn("id", "integer")
	email := schema.NewStringColumn("email", "varchar")
	tbl := schema.NewTable("posts").
		AddColumns(
			id,
			email,
			&schema.Column{
				Name:    "status",
				Type:    &schema.ColumnType{Type: &schema.StringType{T: "varchar", Size: 20}},
				Default: &schema.Literal{V: "'draft'"},
			},
			&schema.Column{
				Name:    "created_at",
				Type:    &schema.ColumnType{Type: &schema.TimeType{T: "timestamp"}},
				Default: &schema.RawExpr{X: "CURRENT_TIMESTAMP"},
			},
			&schema.Column{
				Name: "score",
				Type: &schema.ColumnType{Type: &schema.FloatType{T: "real"}},
			},
			&schema.Column{
				Name: "body",
				Type: &schema.ColumnType{Type: &schema.StringType{T: "text"}},
			},
			&schema.Column{
				Name:    "active",
				Type:    &schema.ColumnType{Type: &schema.BoolType{T: "boolean"}},
				Default: &schema.Literal{V: "true"},
			},
		).
		SetPrimaryKey(schema.NewPrimaryKey(id)).
		AddIndexes(schema.NewUniqueIndex("ux_posts_email").AddColumns(email))
	r, err := load.NewRegistry(&load.Entity{Name: "Post", Table: tbl})
	require.NoError(t, err)
	g := convertAll(t, r)

	code := format(t, g, "Post")
	assert.Contains(t, code, `field.String("email").Unique().MaxLen(255),`)
	assert.Contains(t, code, `field.String("status").Default("draft").MaxLen(20),`)
	assert.Contains(t, code, `field.Time("created_at").ServerDefault("CURRENT_TIMESTAMP"),`)
	assert.Contains(t, code, `field.Float("score"),`)
	assert.Contains(t, code, `field.Text("body"),`)
	assert.Contains(t, code, `field.Bool("active").Default(true),`)
}

func TestFormatLiteralDefaults(t *testing.T) {
	tests := []struct {
		name    string
		typ     schema.Type
		literal string
		want    string
	}{
		{"active", &schema.BoolType{T: "boolean"}, "true", `field.Bool("active").Default(true),`},
		{"retries", &schema.IntegerType{T: "integer"}, "5", `field.Int("retries").Default(5),`},
		{"ratio", &schema.FloatType{T: "real"}, "1.5", `field.Float("ratio").Default(1.5),`},
		{"label", &schema.StringType{T: "varchar", Size: 10}, "'on'", `field.String("label").Default("on").MaxLen(10),`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := schema.NewIntColumn("id", "integer")
			tbl := schema.NewTable("flags").
				AddColumns(id, &schema.Column{
					Name:    tt.name,
					Type:    &schema.ColumnType{Type: tt.typ},
					Default: &schema.Literal{V: tt.literal},
				}).
				SetPrimaryKey(schema.NewPrimaryKey(id))
			r, err := load.NewRegistry(&load.Entity{Name: "Flag", Table: tbl})
			require.NoError(t, err)
			g := convertAll(t, r)

			code := format(t, g, "Flag")
			assert.Contains(t, code, tt.want)

			src, err := imports.Process("flag.go", []byte(code), nil)
			require.NoError(t, err)
			f, err := parser.ParseFile(token.NewFileSet(), "flag.go", src, 0)
			require.NoError(t, err)
			var calls int
			ast.Inspect(f, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				if sel, ok := call.Fun.(*ast.SelectorExpr); ok && sel.Sel.Name == "Default" {
					calls++
					assert.Len(t, call.Args, 1, "Default takes the literal value")
				}
				return true
			})
			assert.Equal(t, 1, calls)
		})
	}
}

func TestFormatOutput(t *testing.T) {
	g := convertAll(t, loadtest.Constraints().Registry)
	typ, _ := g.Lookup("Address")

	b, err := Format(typ, FormatOutput(OutputConfig{
		Package:   "models",
		Framework: "github.com/org/velox",
		Header:    "// Custom header",
	}))
	require.NoError(t, err)
	code := string(b)
	assert.Contains(t, code, "// Custom header")
	assert.Contains(t, code, "package models")
	assert.Contains(t, code, `"github.com/org/velox/schema/edge"`)
	assert.Contains(t, code, `"github.com/org/velox"`)
	assert.NotContains(t, code, DefaultFramework)

	assert.Equal(t, code, func() string {
		b, err := Format(typ, FormatOutput(OutputConfig{Package: "models", Framework: "github.com/org/velox", Header: "// Custom header"}))
		require.NoError(t, err)
		return string(b)
	}(), "rendering is deterministic")
}

func TestFormatGraphOutput(t *testing.T) {
	g := convertAll(t, loadtest.Constraints().Registry, WithPackage("models"), WithHeader("// header"))

	code := format(t, g, "User")
	assert.Contains(t, code, "package models")
	assert.Contains(t, code, "// header")
	typ, _ := g.Lookup("User")
	assert.Contains(t, typ.String(), "package schema")
}
