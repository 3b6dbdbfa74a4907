package gen

import "fmt"

// Metadata is the registry converted models are registered with. Each
// table is owned by exactly one model.
type Metadata struct {
	// Schema is the name of the database schema, empty for the default.
	Schema string
	models []*Type
	tables map[string]*Type
}

// NewMetadata returns an empty registry for the named database schema.
func NewMetadata(schema string) *Metadata {
	return &Metadata{Schema: schema, tables: make(map[string]*Type)}
}

// Register adds t to the registry. It fails if another model already owns
// the table of t.
func (m *Metadata) Register(t *Type) error {
	if m.tables == nil {
		m.tables = make(map[string]*Type)
	}
	switch prev, ok := m.tables[t.Table]; {
	case ok && prev == t:
		return nil
	case ok:
		return NewSchemaError(t.Name, "", fmt.Sprintf("table %q is already registered by %s", t.Table, prev.Name), nil)
	}
	m.tables[t.Table] = t
	m.models = append(m.models, t)
	return nil
}

// Models returns the registered models in registration order.
func (m *Metadata) Models() []*Type {
	return m.models
}

// Lookup returns the model registered for table.
func (m *Metadata) Lookup(table string) (*Type, bool) {
	t, ok := m.tables[table]
	return t, ok
}

// Database describes the database converted models are bound to.
type Database struct {
	Dialect string `json:"dialect" yaml:"dialect" msgpack:"dialect"`
	DSN     string `json:"-" yaml:"-" msgpack:"-"`
}
