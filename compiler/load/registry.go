package load

import (
	"fmt"

	"ariga.io/atlas/sql/schema"
)

// Registry holds the mapped entities of one source schema by name.
type Registry struct {
	entities []*Entity
	byName   map[string]*Entity
	byTable  map[string]*Entity
}

// NewRegistry returns a registry holding the given entities.
func NewRegistry(entities ...*Entity) (*Registry, error) {
	r := &Registry{
		byName:  make(map[string]*Entity, len(entities)),
		byTable: make(map[string]*Entity, len(entities)),
	}
	for _, e := range entities {
		if err := r.Add(e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers e. Entity names must be unique, and an entity must be bound
// to a table.
func (r *Registry) Add(e *Entity) error {
	switch {
	case e == nil:
		return fmt.Errorf("load: nil entity")
	case e.Name == "":
		return fmt.Errorf("load: entity without a name (table %q)", e.TableName())
	case e.Table == nil:
		return fmt.Errorf("load: entity %q is not bound to a table", e.Name)
	}
	if _, ok := r.byName[e.Name]; ok {
		return fmt.Errorf("load: duplicate entity %q", e.Name)
	}
	r.entities = append(r.entities, e)
	r.byName[e.Name] = e
	if _, ok := r.byTable[e.Table.Name]; !ok {
		r.byTable[e.Table.Name] = e
	}
	return nil
}

// Entities returns the registered entities in registration order.
func (r *Registry) Entities() []*Entity {
	return r.entities
}

// Entity returns the entity registered under name.
func (r *Registry) Entity(name string) (*Entity, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// ByTable returns the first entity bound to the table name.
func (r *Registry) ByTable(name string) (*Entity, bool) {
	e, ok := r.byTable[name]
	return e, ok
}

// Target resolves the target entity of rel.
func (r *Registry) Target(rel *Relationship) (*Entity, error) {
	e, ok := r.byName[rel.Target]
	if !ok {
		return nil, fmt.Errorf("load: relationship %q: unknown target entity %q", rel.Name, rel.Target)
	}
	return e, nil
}

// ForeignKey returns the foreign key and local column backing the
// many-to-one relationship rel of e.
func (r *Registry) ForeignKey(e *Entity, rel *Relationship) (*schema.ForeignKey, *schema.Column, error) {
	if rel.Column != "" {
		c, ok := e.Column(rel.Column)
		if !ok {
			return nil, nil, fmt.Errorf("load: relationship %q: column %q not found in table %q", rel.Name, rel.Column, e.TableName())
		}
		fks := e.ForeignKeys(c)
		if len(fks) == 0 {
			return nil, nil, fmt.Errorf("load: relationship %q: column %q has no foreign key", rel.Name, rel.Column)
		}
		return fks[0], c, nil
	}
	target, err := r.Target(rel)
	if err != nil {
		return nil, nil, err
	}
	for _, fk := range e.Table.ForeignKeys {
		if fk.RefTable != nil && fk.RefTable.Name == target.TableName() && len(fk.Columns) > 0 {
			return fk, fk.Columns[0], nil
		}
	}
	return nil, nil, fmt.Errorf("load: relationship %q: no foreign key from %q to %q", rel.Name, e.TableName(), target.TableName())
}
