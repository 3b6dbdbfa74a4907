package gen

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/veloxconv/schema/edge"
	"github.com/syssam/veloxconv/schema/field"
	"github.com/syssam/veloxconv/schema/index"
)

// build constructs the fields, edges and constraints of t from the
// extracted specs and registers t in the metadata registry.
func (g *Graph) build(t *Type, fields []fieldSpec, rels []relSpec) error {
	for _, s := range fields {
		ctor, ok := field.Lookup(s.tag)
		if !ok {
			return NewSchemaError(t.Name, s.key, fmt.Sprintf("no field constructor for column type %q", s.tag), nil)
		}
		d, err := ctor(s.key, s.params)
		if err != nil {
			return NewSchemaError(t.Name, s.key, "invalid field", err)
		}
		t.Fields = append(t.Fields, &Field{Name: s.key, Tag: s.tag, Params: s.params, Desc: d})
	}
	for _, s := range rels {
		if _, ok := t.Field(s.name); ok {
			return NewSchemaError(t.Name, s.name, "relation redeclares a column field", nil)
		}
		if _, ok := t.Edge(s.name); ok {
			return NewEdgeError(t.Name, s.to.Name, s.name, "relation redeclared", nil)
		}
		d, err := edge.Constructors[s.kind](s.name, s.params)
		if err != nil {
			return NewEdgeError(t.Name, s.to.Name, s.name, "invalid relation", err)
		}
		e := &Edge{
			Name:    s.name,
			Rel:     s.rel,
			Owner:   t,
			To:      s.to,
			Through: s.through,
			Params:  s.params,
			Desc:    d,
		}
		t.Edges = append(t.Edges, e)
		if s.target != nil {
			if err := g.link(e, s.target); err != nil {
				return err
			}
		}
	}
	for _, cols := range t.entity.UniqueConstraints() {
		t.Indexes = append(t.Indexes, &Index{
			Columns: cols,
			Desc:    index.UniqueColumns(cols...).Descriptor(),
		})
	}
	return g.Metadata.Register(t)
}

// throughModel returns the join model of table, creating it on first use.
// The model holds no fields, only the two foreign keys to the models it
// joins.
func (g *Graph) throughModel(table string, owner *Type, target ForwardRef) (*Type, error) {
	if t, ok := g.through[table]; ok {
		return t, nil
	}
	name := pascal(table)
	if _, ok := g.registry.Entity(name); ok {
		name += "Through"
	}
	t := &Type{
		state:    done,
		Name:     name,
		Table:    table,
		Metadata: g.Metadata,
		Database: g.Database,
		Through:  true,
		Pos:      len(g.Nodes),
	}
	from, to := snake(owner.Name), snake(target.Name)
	if from == to {
		from, to = "from_"+from, "to_"+to
	}
	t.Edges = []*Edge{
		{Name: from, Rel: M2O, Owner: t, To: ForwardRef{Name: owner.Name, Pos: owner.Pos}, Virtual: true},
		{Name: to, Rel: M2O, Owner: t, To: target, Virtual: true},
	}
	if err := g.Metadata.Register(t); err != nil {
		return nil, err
	}
	g.Nodes = append(g.Nodes, t)
	g.through[table] = t
	g.log.Debug("through model created", "model", name, "table", table)
	return t, nil
}

// link resolves the target of e and registers the reverse edge of declared
// edges on the target. The reverse edge is named by the related name of e,
// or by the pluralized owner name.
func (g *Graph) link(e *Edge, target *Type) error {
	e.Type = target
	e.To = ForwardRef{Name: target.Name, Pos: target.Pos}
	if e.Virtual {
		return nil
	}
	name := e.RefName()
	if name == "" {
		name = relatedName(e.Owner.Name)
	}
	// Symmetric self relation.
	if target == e.Owner && name == e.Name {
		return nil
	}
	if _, ok := target.Edge(name); ok {
		return NewEdgeError(e.Owner.Name, target.Name, e.Name, fmt.Sprintf("related name %q is already declared on %s", name, target.Name), nil)
	}
	if _, ok := target.Field(name); ok {
		return NewEdgeError(e.Owner.Name, target.Name, e.Name, fmt.Sprintf("related name %q collides with a field of %s", name, target.Name), nil)
	}
	rel := O2M
	if e.Rel == M2M {
		rel = M2M
	}
	e.Ref = &Edge{
		Name:    name,
		Rel:     rel,
		Owner:   target,
		To:      ForwardRef{Name: e.Owner.Name, Pos: e.Owner.Pos},
		Type:    e.Owner,
		Through: e.Through,
		Virtual: true,
		Ref:     e,
	}
	target.Edges = append(target.Edges, e.Ref)
	g.log.Debug("reverse edge registered", "model", target.Name, "edge", name, "owner", e.Owner.Name)
	return nil
}

// patch runs once t is complete. Targets of the relations of t resolve the
// forward references they hold, and references of t to itself resolve to t.
func (g *Graph) patch(t *Type) error {
	for _, e := range t.DeclaredEdges() {
		switch {
		case e.Resolved():
			if err := g.resolveRefs(e.Type); err != nil {
				return err
			}
		case e.To.Pos == t.Pos:
			if err := g.link(e, t); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveRefs resolves the forward references of t whose targets are
// complete.
func (g *Graph) resolveRefs(t *Type) error {
	for _, e := range t.DeclaredEdges() {
		if e.Resolved() {
			continue
		}
		if n := g.Nodes[e.To.Pos]; n.Done() {
			if err := g.link(e, n); err != nil {
				return err
			}
		}
	}
	return nil
}

// relatedName returns the default name of the reverse edge of a relation
// declared on the named model.
func relatedName(owner string) string {
	return inflect.Pluralize(strings.ToLower(owner))
}
