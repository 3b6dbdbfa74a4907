package graphql

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/syssam/veloxconv/compiler/gen"
	"github.com/syssam/veloxconv/schema/field"
)

// Custom scalars of the rendered schema.
const (
	ScalarDecimal = "Decimal"
	ScalarDate    = "Date"
	ScalarTime    = "Time"
	ScalarClock   = "Clock"
)

// sourceName is the source name of the rendered schema.
const sourceName = "velox.graphql"

// scalars maps field types to GraphQL scalars.
var scalars = map[field.Type]string{
	field.TypeBool:    "Boolean",
	field.TypeInt:     "Int",
	field.TypeInt64:   "Int",
	field.TypeFloat:   "Float",
	field.TypeDecimal: ScalarDecimal,
	field.TypeString:  "String",
	field.TypeText:    "String",
	field.TypeDate:    ScalarDate,
	field.TypeTime:    ScalarTime,
	field.TypeClock:   ScalarClock,
}

// Option configures Render.
type Option func(*renderer)

// WithModelPackage binds every object type to the model of the same name in
// pkg with a @goModel directive.
func WithModelPackage(pkg string) Option {
	return func(r *renderer) { r.modelPkg = pkg }
}

// WithQuery adds a Query type with one list field per model.
func WithQuery() Option {
	return func(r *renderer) { r.query = true }
}

// WithThroughModels renders the join models of many-to-many relations.
// They are left out by default.
func WithThroughModels() Option {
	return func(r *renderer) { r.through = true }
}

type renderer struct {
	modelPkg string
	query    bool
	through  bool
	scalars  map[string]bool
}

// Render returns the GraphQL schema of the given models. The rendered
// schema is validated before it is returned.
func Render(models []*gen.Type, opts ...Option) ([]byte, error) {
	doc, err := Document(models, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(doc)
	if _, err := gqlparser.LoadSchema(&ast.Source{Name: sourceName, Input: buf.String()}); err != nil {
		return nil, fmt.Errorf("graphql: invalid schema: %w", err)
	}
	return buf.Bytes(), nil
}

// Document returns the GraphQL schema document of the given models.
func Document(models []*gen.Type, opts ...Option) (*ast.SchemaDocument, error) {
	r := &renderer{scalars: make(map[string]bool)}
	for _, opt := range opts {
		opt(r)
	}
	doc := &ast.SchemaDocument{}
	var query ast.FieldList
	for _, t := range models {
		if t.Through && !r.through {
			continue
		}
		def, err := r.object(t)
		if err != nil {
			return nil, err
		}
		doc.Definitions = append(doc.Definitions, def)
		query = append(query, &ast.FieldDefinition{
			Name: queryName(t.Name),
			Type: ast.NonNullListType(ast.NonNullNamedType(t.Name, nil), nil),
		})
	}
	if r.query && len(query) > 0 {
		doc.Definitions = append(doc.Definitions, &ast.Definition{
			Kind:   ast.Object,
			Name:   "Query",
			Fields: query,
		})
	}
	names := make([]string, 0, len(r.scalars))
	for s := range r.scalars {
		names = append(names, s)
	}
	slices.Sort(names)
	for _, s := range names {
		doc.Definitions = append(doc.Definitions, &ast.Definition{Kind: ast.Scalar, Name: s})
	}
	if r.modelPkg != "" {
		doc.Directives = append(doc.Directives, &ast.DirectiveDefinition{
			// The formatter requires a source on directive definitions.
			Position: &ast.Position{Src: &ast.Source{Name: sourceName}},
			Name:     "goModel",
			Arguments: ast.ArgumentDefinitionList{
				{Name: "model", Type: ast.NamedType("String", nil)},
			},
			Locations: []ast.DirectiveLocation{ast.LocationObject},
		})
	}
	return doc, nil
}

func (r *renderer) object(t *gen.Type) (*ast.Definition, error) {
	def := &ast.Definition{
		Kind:        ast.Object,
		Name:        t.Name,
		Description: fmt.Sprintf("%s is bound to the %s table.", t.Name, t.Table),
	}
	if r.modelPkg != "" {
		def.Directives = ast.DirectiveList{goModel(r.modelPkg + "." + t.Name)}
	}
	pk := t.PrimaryKey()
	for _, f := range t.Fields {
		name, ok := scalars[f.Desc.Info.Type]
		if !ok {
			return nil, fmt.Errorf("graphql: %s.%s: no scalar for field type %s", t.Name, f.Name, f.Desc.Info)
		}
		if len(pk) == 1 && pk[0] == f {
			name = "ID"
		}
		if !builtin(name) {
			r.scalars[name] = true
		}
		typ := ast.NonNullNamedType(name, nil)
		if f.Desc.IsNullable() {
			typ = ast.NamedType(name, nil)
		}
		def.Fields = append(def.Fields, &ast.FieldDefinition{Name: fieldName(f.Name), Type: typ})
	}
	for _, e := range t.Edges {
		target := e.Target()
		var typ *ast.Type
		switch {
		case e.M2O() && e.Desc != nil && e.Desc.Nullable:
			typ = ast.NamedType(target, nil)
		case e.M2O():
			typ = ast.NonNullNamedType(target, nil)
		default:
			typ = ast.NonNullListType(ast.NonNullNamedType(target, nil), nil)
		}
		name := fieldName(e.Name)
		if slices.ContainsFunc(def.Fields, func(f *ast.FieldDefinition) bool { return f.Name == name }) {
			return nil, fmt.Errorf("graphql: %s: edge %q collides with field %q", t.Name, e.Name, name)
		}
		def.Fields = append(def.Fields, &ast.FieldDefinition{Name: name, Type: typ})
	}
	return def, nil
}

func goModel(model string) *ast.Directive {
	return &ast.Directive{
		Name: "goModel",
		Arguments: ast.ArgumentList{
			{Name: "model", Value: &ast.Value{Kind: ast.StringValue, Raw: model}},
		},
	}
}

func builtin(scalar string) bool {
	switch scalar {
	case "ID", "Int", "Float", "String", "Boolean":
		return true
	}
	return false
}

// fieldName returns the lower camel-case form of a field or edge name.
// Upper-case column names such as "FIRST_NAME" are lowered first.
func fieldName(s string) string {
	if s == strings.ToUpper(s) {
		s = strings.ToLower(s)
	}
	return inflect.CamelizeDownFirst(s)
}

// queryName returns the Query field listing the models named name.
func queryName(name string) string {
	return inflect.CamelizeDownFirst(inflect.Pluralize(name))
}
