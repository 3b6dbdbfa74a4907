package gen

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/veloxconv/schema/edge"
	"github.com/syssam/veloxconv/schema/field"
)

// FormatOption configures Format.
type FormatOption func(*formatter)

// SkipNamesIfMatch controls whether the column name of a field is omitted
// when it equals the field name. Enabled by default.
func SkipNamesIfMatch(skip bool) FormatOption {
	return func(f *formatter) { f.skipNames = skip }
}

// FormatOutput sets the package, import root and header of the rendered
// file.
func FormatOutput(c OutputConfig) FormatOption {
	return func(f *formatter) {
		if c.Package != "" {
			f.out.Package = c.Package
		}
		if c.Framework != "" {
			f.out.Framework = c.Framework
		}
		if c.Header != "" {
			f.out.Header = c.Header
		}
	}
}

type formatter struct {
	skipNames bool
	out       OutputConfig
}

// Format renders the velox schema declaration of t. The output holds the
// model struct and its Config, Fields, Edges and Indexes methods; methods
// with nothing to declare are left out. Virtual edges are never rendered.
func Format(t *Type, opts ...FormatOption) ([]byte, error) {
	f := &formatter{
		skipNames: true,
		out: OutputConfig{
			Package:   DefaultPackage,
			Framework: DefaultFramework,
			Header:    DefaultHeader,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	var buf bytes.Buffer
	if err := f.file(t).Render(&buf); err != nil {
		return nil, NewGenerationError("format", fileName(t), "render "+t.Name, err)
	}
	return buf.Bytes(), nil
}

// Format renders t with the output settings of the graph.
func (g *Graph) Format(t *Type, opts ...FormatOption) ([]byte, error) {
	return Format(t, append([]FormatOption{FormatOutput(g.Output())}, opts...)...)
}

func (f *formatter) pkg(name string) string {
	c := Config{Framework: f.out.Framework}
	return c.pkg(name)
}

func (f *formatter) file(t *Type) *jen.File {
	file := jen.NewFile(f.out.Package)
	file.HeaderComment(f.out.Header)
	file.ImportAlias(f.pkg(""), "velox")
	file.ImportName(f.pkg("schema/field"), "field")
	file.ImportName(f.pkg("schema/edge"), "edge")
	file.ImportName(f.pkg("schema/index"), "index")
	file.ImportName(f.pkg("dialect/sqlschema"), "sqlschema")

	velox := f.pkg("")
	file.Commentf("%s holds the schema definition for the %s entity.", t.Name, t.Name)
	file.Type().Id(t.Name).Struct(jen.Qual(velox, "Schema"))

	file.Commentf("Config of the %s.", t.Name)
	file.Func().Params(jen.Id(t.Name)).Id("Config").Params().Qual(velox, "Config").Block(
		jen.Return(jen.Qual(velox, "Config").Values(jen.Dict{jen.Id("Table"): jen.Lit(t.Table)})),
	)

	if len(t.Fields) > 0 {
		items := make([]jen.Code, 0, len(t.Fields))
		for _, fd := range t.Fields {
			items = append(items, f.field(t, fd))
		}
		f.method(file, t, "Fields", "Field", items)
	}
	if edges := t.DeclaredEdges(); len(edges) > 0 {
		items := make([]jen.Code, 0, len(edges))
		for _, e := range edges {
			items = append(items, f.edge(e))
		}
		f.method(file, t, "Edges", "Edge", items)
	}
	if len(t.Indexes) > 0 {
		items := make([]jen.Code, 0, len(t.Indexes))
		for _, idx := range t.Indexes {
			cols := make([]jen.Code, 0, len(idx.Columns))
			for _, c := range idx.Columns {
				cols = append(cols, jen.Lit(c))
			}
			items = append(items, jen.Qual(f.pkg("schema/index"), "UniqueColumns").Call(cols...))
		}
		f.method(file, t, "Indexes", "Index", items)
	}
	return file
}

// method renders a method of t returning a multi-line slice of the velox
// element type elem.
func (f *formatter) method(file *jen.File, t *Type, name, elem string, items []jen.Code) {
	list := jen.Index().Qual(f.pkg(""), elem).Custom(jen.Options{
		Open:      "{",
		Close:     "}",
		Separator: ",",
		Multi:     true,
	}, items...)
	file.Commentf("%s of the %s.", name, t.Name)
	file.Func().Params(jen.Id(t.Name)).Id(name).Params().Index().Qual(f.pkg(""), elem).Block(
		jen.Return(list),
	)
}

// field renders the builder chain of fd: the constructor followed by the
// common parameters that differ from their default, sorted by name, and the
// type-specific parameters. Flag parameters render as argument-less calls;
// every other value, booleans included, is passed as a literal.
func (f *formatter) field(t *Type, fd *Field) jen.Code {
	c := jen.Qual(f.pkg("schema/field"), fd.Desc.Info.Type.Builder()).Call(jen.Lit(fd.Name))
	pk := fd.Params[field.ParamPrimaryKey] == true
	for _, name := range fd.Params.Names() {
		if field.IsTypeSpecific(fd.Tag, name) {
			continue
		}
		p, ok := field.LookupParam(fd.Tag, name)
		if !ok {
			continue
		}
		v := fd.Params[name]
		switch {
		case p.IsDefault(v):
			continue
		case name == field.ParamName && f.skipNames && v == fd.Name:
			continue
		case name == field.ParamNullable && pk:
			continue
		}
		if p.Flag {
			if v == true {
				c = c.Dot(p.Method).Call()
			}
			continue
		}
		c = c.Dot(p.Method).Call(jen.Lit(v))
	}
	for _, p := range field.TypeSpecificParameters[fd.Tag] {
		if v, ok := fd.Params[p.Name]; ok && v != nil {
			c = c.Dot(p.Method).Call(jen.Lit(v))
		}
	}
	return c
}

// edge renders the builder chain of a declared edge. The target, join
// table, related name and cascade actions come first, then the column and
// nullability.
func (f *formatter) edge(e *Edge) jen.Code {
	d := e.Desc
	target := jen.Id(e.Target()).Dot("Type")
	var c *jen.Statement
	switch d.Kind {
	case edge.KindManyToMany:
		c = jen.Qual(f.pkg("schema/edge"), "ManyToMany").Call(jen.Lit(e.Name), target)
		if e.Through != nil {
			c = c.Dot("Through").Call(jen.Lit(e.Through.Table), jen.Id(e.Through.Name).Dot("Type"))
		}
	default:
		c = jen.Qual(f.pkg("schema/edge"), "ForeignKey").Call(jen.Lit(e.Name), target)
	}
	if d.RefName != "" {
		c = c.Dot("Ref").Call(jen.Lit(d.RefName))
	}
	if d.Kind != edge.KindForeignKey {
		return c
	}
	for _, a := range []struct {
		method string
		name   string
	}{
		{"OnUpdate", d.OnUpdate.ConstName()},
		{"OnDelete", d.OnDelete.ConstName()},
	} {
		if a.name != "" {
			c = c.Dot(a.method).Call(jen.Qual(f.pkg("dialect/sqlschema"), a.name))
		}
	}
	if d.Field != "" && !(f.skipNames && d.Field == e.Name) {
		c = c.Dot("Field").Call(jen.Lit(d.Field))
	}
	if d.Nullable {
		c = c.Dot("Nillable").Call()
	}
	return c
}

// String returns the rendered declaration of t, or the rendering error.
func (t *Type) String() string {
	b, err := Format(t)
	if err != nil {
		return fmt.Sprintf("<%s: %v>", t.Name, err)
	}
	return string(b)
}

// fileName returns the name of the file holding the declaration of t.
func fileName(t *Type) string {
	return snake(t.Name) + ".go"
}
