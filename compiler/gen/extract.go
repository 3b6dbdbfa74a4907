package gen

import (
	"ariga.io/atlas/sql/schema"

	"github.com/syssam/veloxconv/compiler/load"
	"github.com/syssam/veloxconv/dialect/sqlschema"
	"github.com/syssam/veloxconv/schema/edge"
	"github.com/syssam/veloxconv/schema/field"
)

// fieldSpec is the parameter set of one retained column.
type fieldSpec struct {
	key    string
	tag    string
	params field.Params
}

// relSpec is the parameter set of one relation. target is nil when the
// relation points to a model still in progress.
type relSpec struct {
	name    string
	kind    edge.Kind
	rel     Rel
	params  edge.Params
	to      ForwardRef
	target  *Type
	through *Type
}

// integerTags are the column-type tags of the integer family.
var integerTags = map[string]bool{
	field.TagInteger:      true,
	field.TagSmallInteger: true,
	field.TagBigInteger:   true,
}

// extractColumns returns the parameter sets of the columns of e that are
// neither excluded nor part of a foreign key. Unset source attributes fall
// back to the parameter defaults.
func extractColumns(e *load.Entity, excluded func(string) bool) []fieldSpec {
	var specs []fieldSpec
	for _, c := range e.Columns() {
		key := e.Key(c)
		if excluded(key) || len(e.ForeignKeys(c)) > 0 {
			continue
		}
		tag := load.TypeTag(c)
		p := make(field.Params, len(field.CommonParameters)+2)
		for _, param := range field.CommonParameters {
			p[param.Name] = orDefault(columnAttr(e, c, param.Name), param.Default)
		}
		p[field.ParamAutoincrement] = p[field.ParamPrimaryKey] == true && integerTags[tag]
		for _, param := range field.TypeSpecificParameters[tag] {
			p[param.Name] = orDefault(typeAttr(c, param.Name), param.Default)
		}
		specs = append(specs, fieldSpec{key: key, tag: tag, params: p})
	}
	return specs
}

// columnAttr reads the source attribute of a common parameter.
func columnAttr(e *load.Entity, c *schema.Column, name string) any {
	switch name {
	case field.ParamName:
		return c.Name
	case field.ParamPrimaryKey:
		return e.PrimaryKey(c)
	case field.ParamIndex:
		return e.Indexed(c)
	case field.ParamUnique:
		return e.Unique(c)
	case field.ParamNullable:
		return load.Nullable(c)
	case field.ParamDefault:
		return load.Default(c)
	case field.ParamServerDefault:
		return load.ServerDefault(c)
	}
	return nil
}

// typeAttr reads the source attribute of a type-specific parameter.
func typeAttr(c *schema.Column, name string) any {
	switch name {
	case field.ParamMaxLength:
		return load.Length(c)
	case field.ParamMaxDigits:
		return load.Precision(c)
	case field.ParamDecimalPlaces:
		return load.Scale(c)
	}
	return nil
}

// orDefault returns def if v is a zero value, and v otherwise.
func orDefault(v, def any) any {
	switch v := v.(type) {
	case nil:
		return def
	case bool:
		if !v {
			return def
		}
	case string:
		if v == "" {
			return def
		}
	case int:
		if v == 0 {
			return def
		}
	case int64:
		if v == 0 {
			return def
		}
	case float64:
		if v == 0 {
			return def
		}
	}
	return v
}

// extractRelations returns the relation specs of the model t. One-to-many
// relationships are skipped, as their models get them as reverse edges of
// the many-to-one side.
func (g *Graph) extractRelations(t *Type, reverse bool) ([]relSpec, error) {
	e := t.entity
	var specs []relSpec
	for _, rel := range e.Relationships {
		switch rel.Direction {
		case load.OneToMany:
			continue
		case load.ManyToOne:
			spec, err := g.manyToOne(t, rel)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		case load.ManyToMany:
			spec, ok, err := g.manyToMany(t, rel, reverse)
			if err != nil {
				return nil, err
			}
			if ok {
				specs = append(specs, spec)
			}
		default:
			return nil, NewEdgeError(e.Name, rel.Target, rel.Name, "unknown relationship direction", nil)
		}
	}
	return specs, nil
}

func (g *Graph) manyToOne(t *Type, rel *load.Relationship) (relSpec, error) {
	e := t.entity
	target, err := g.registry.Target(rel)
	if err != nil {
		return relSpec{}, NewEdgeError(e.Name, rel.Target, rel.Name, "", err)
	}
	fk, col, err := g.registry.ForeignKey(e, rel)
	if err != nil {
		return relSpec{}, NewEdgeError(e.Name, rel.Target, rel.Name, "", err)
	}
	spec := relSpec{name: rel.Name, kind: edge.KindForeignKey, rel: M2O}
	switch {
	case g.cache[target] != nil:
		spec.target = g.cache[target]
	case g.inProgress[target] || target == e:
		spec.to = g.forward(target)
		g.log.Debug("forward reference", "model", t.Name, "edge", rel.Name, "target", target.Name)
	default:
		if spec.target, err = g.convert(target); err != nil {
			return relSpec{}, err
		}
	}
	if spec.target != nil {
		spec.to = ForwardRef{Name: spec.target.Name, Pos: spec.target.Pos}
	}
	onUpdate, err := sqlschema.FromReferenceOption(fk.OnUpdate)
	if err != nil {
		return relSpec{}, NewEdgeError(e.Name, target.Name, rel.Name, "", err)
	}
	onDelete, err := sqlschema.FromReferenceOption(fk.OnDelete)
	if err != nil {
		return relSpec{}, NewEdgeError(e.Name, target.Name, rel.Name, "", err)
	}
	spec.params = edge.Params{
		edge.ParamTo:          target.Name,
		edge.ParamName:        e.Key(col),
		edge.ParamRelatedName: rel.BackPopulates,
		edge.ParamOnUpdate:    onUpdate.String(),
		edge.ParamOnDelete:    onDelete.String(),
		edge.ParamNullable:    load.Nullable(col),
	}
	return spec, nil
}

// manyToMany returns the spec of a many-to-many relation, or false if the
// relation is wired from the other side. A relation is wired from the
// other side when the target already has an edge over the same join table,
// or when the target is in progress and this is a reverse conversion.
func (g *Graph) manyToMany(t *Type, rel *load.Relationship, reverse bool) (relSpec, bool, error) {
	e := t.entity
	target, err := g.registry.Target(rel)
	if err != nil {
		return relSpec{}, false, NewEdgeError(e.Name, rel.Target, rel.Name, "", err)
	}
	if rel.Secondary == "" {
		return relSpec{}, false, NewEdgeError(e.Name, target.Name, rel.Name, "many-to-many relation without join table", nil)
	}
	skip := func(reason string) (relSpec, bool, error) {
		g.log.Debug("relation skipped", "model", t.Name, "edge", rel.Name, "target", target.Name, "reason", reason)
		return relSpec{}, false, nil
	}
	spec := relSpec{name: rel.Name, kind: edge.KindManyToMany, rel: M2M}
	switch {
	case g.cache[target] != nil:
		if g.cache[target].throughTable(rel.Secondary) {
			return skip("target already wired")
		}
		spec.target = g.cache[target]
	case g.inProgress[target]:
		if reverse {
			return skip("reverse conversion")
		}
		spec.to = g.forward(target)
		g.log.Debug("forward reference", "model", t.Name, "edge", rel.Name, "target", target.Name)
	default:
		if spec.target, err = g.convert(target, asReverse()); err != nil {
			return relSpec{}, false, err
		}
		if spec.target.throughTable(rel.Secondary) {
			return skip("target already wired")
		}
	}
	if spec.target != nil {
		spec.to = ForwardRef{Name: spec.target.Name, Pos: spec.target.Pos}
	}
	if spec.through, err = g.throughModel(rel.Secondary, t, spec.to); err != nil {
		return relSpec{}, false, err
	}
	spec.params = edge.Params{
		edge.ParamTo:           target.Name,
		edge.ParamThrough:      spec.through.Name,
		edge.ParamThroughTable: rel.Secondary,
		edge.ParamRelatedName:  rel.BackPopulates,
	}
	return spec, true, nil
}
