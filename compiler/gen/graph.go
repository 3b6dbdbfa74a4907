package gen

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/syssam/veloxconv/compiler/load"
)

// Graph is the conversion context of one registry of source entities. It
// holds every model converted so far and the bookkeeping that breaks
// relation cycles. A Graph is not safe for concurrent use.
type Graph struct {
	*Config
	// Nodes are the models of the graph, in the order their conversion
	// started. Through models are appended when first needed.
	Nodes []*Type

	registry   *load.Registry
	nodes      map[*load.Entity]*Type
	cache      map[*load.Entity]*Type
	inProgress map[*load.Entity]bool
	through    map[string]*Type
	run        uuid.UUID
	log        *slog.Logger
	err        error
}

// NewGraph creates a conversion context for the entities of r.
func NewGraph(c *Config, r *load.Registry) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if r == nil {
		return nil, NewConfigError("Registry", nil, "registry cannot be nil")
	}
	c.defaults()
	run := uuid.New()
	return &Graph{
		Config:     c,
		registry:   r,
		nodes:      make(map[*load.Entity]*Type),
		cache:      make(map[*load.Entity]*Type),
		inProgress: make(map[*load.Entity]bool),
		through:    make(map[string]*Type),
		run:        run,
		log:        c.Logger.With("run", run.String()),
	}, nil
}

// RunID returns the identifier of the conversion context, attached to
// every log record and export.
func (g *Graph) RunID() string { return g.run.String() }

// Registry returns the source entities of the graph.
func (g *Graph) Registry() *load.Registry { return g.registry }

// ConvertOption configures a single conversion.
type ConvertOption func(*convertOptions)

type convertOptions struct {
	exclude []string
	reverse bool
}

// Exclude leaves the given column keys out of the converted model.
func Exclude(columns ...string) ConvertOption {
	return func(o *convertOptions) {
		o.exclude = append(o.exclude, columns...)
	}
}

// asReverse marks a conversion triggered by the other side of a many-to-many
// relation. Such a conversion does not wire its many-to-many relations back
// to models still in progress.
func asReverse() ConvertOption {
	return func(o *convertOptions) {
		o.reverse = true
	}
}

// Convert converts e, and every entity it depends on, into models. Repeated
// calls for the same entity return the same model. An error leaves the
// graph failed, and later calls return that error.
func (g *Graph) Convert(e *load.Entity, opts ...ConvertOption) (*Type, error) {
	if g.err != nil {
		return nil, g.err
	}
	t, err := g.convert(e, opts...)
	if err == nil {
		err = g.resolveAll()
	}
	if err != nil {
		g.err = err
		return nil, err
	}
	return t, nil
}

// ConvertAll converts the given entities, or all entities of the registry
// if none are given.
func (g *Graph) ConvertAll(entities ...*load.Entity) ([]*Type, error) {
	if len(entities) == 0 {
		entities = g.registry.Entities()
	}
	types := make([]*Type, 0, len(entities))
	for _, e := range entities {
		t, err := g.Convert(e)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// Lookup returns the model with the given name.
func (g *Graph) Lookup(name string) (*Type, bool) {
	for _, n := range g.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// Models returns the complete models of the graph.
func (g *Graph) Models() []*Type {
	types := make([]*Type, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.Done() {
			types = append(types, n)
		}
	}
	return types
}

func (g *Graph) convert(e *load.Entity, opts ...ConvertOption) (*Type, error) {
	if e == nil {
		return nil, NewSchemaError("", "", "nil entity", nil)
	}
	if t, ok := g.cache[e]; ok {
		return t, nil
	}
	if g.inProgress[e] {
		return nil, NewSchemaError(e.Name, "", "entity is already being converted", nil)
	}
	if _, ok := g.registry.Entity(e.Name); !ok {
		return nil, NewSchemaError(e.Name, "", "entity is not registered", nil)
	}
	var o convertOptions
	for _, opt := range opts {
		opt(&o)
	}
	t := g.reserve(e)
	g.inProgress[e] = true
	g.log.Debug("converting entity", "entity", e.Name, "table", t.Table, "reverse", o.reverse)

	excluded := func(key string) bool {
		return g.Excluded(e.Name, key) || slices.Contains(o.exclude, key)
	}
	fields := extractColumns(e, excluded)
	rels, err := g.extractRelations(t, o.reverse)
	if err != nil {
		return nil, err
	}
	if err := g.build(t, fields, rels); err != nil {
		return nil, err
	}
	t.state = done
	g.cache[e] = t
	delete(g.inProgress, e)
	g.log.Debug("model converted", "model", t.Name, "fields", len(t.Fields), "edges", len(t.Edges))
	if err := g.patch(t); err != nil {
		return nil, err
	}
	return t, nil
}

// reserve allocates the node of e in the graph arena.
func (g *Graph) reserve(e *load.Entity) *Type {
	t := &Type{
		entity:   e,
		state:    inProgress,
		Name:     e.Name,
		Table:    e.TableName(),
		Metadata: g.Metadata,
		Database: g.Database,
		Pos:      len(g.Nodes),
	}
	g.Nodes = append(g.Nodes, t)
	g.nodes[e] = t
	return t
}

// forward returns a forward reference to the node of e.
func (g *Graph) forward(e *load.Entity) ForwardRef {
	t := g.nodes[e]
	return ForwardRef{Name: t.Name, Pos: t.Pos}
}

// resolveAll resolves every forward reference still outstanding in the
// graph. It runs after each top-level conversion, when all nodes of the
// arena are complete.
func (g *Graph) resolveAll() error {
	var errs []error
	for _, n := range g.Nodes {
		for _, e := range n.Edges {
			if e.Resolved() {
				continue
			}
			if e.To.Pos < 0 || e.To.Pos >= len(g.Nodes) || !g.Nodes[e.To.Pos].Done() {
				errs = append(errs, NewEdgeError(n.Name, e.To.Name, e.Name, "unresolved forward reference", nil))
				continue
			}
			if err := g.link(e, g.Nodes[e.To.Pos]); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
