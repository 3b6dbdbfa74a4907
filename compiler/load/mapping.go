package load

import (
	"fmt"
	"os"
	"strings"

	"ariga.io/atlas/sql/schema"
	"github.com/go-openapi/inflect"
	"gopkg.in/yaml.v3"

	"github.com/syssam/veloxconv/dialect"
)

// MappingFile describes a source schema: where to inspect it and how its
// tables map onto entities.
type MappingFile struct {
	Version string `yaml:"version"`
	Dialect string `yaml:"dialect"`
	// DSN is expanded against the environment, so "${DATABASE_URL}" works.
	DSN    string `yaml:"dsn"`
	Schema string `yaml:"schema,omitempty"`
	// Infer derives relationships from foreign keys for entities that
	// declare none.
	Infer    bool            `yaml:"infer,omitempty"`
	Entities []EntityMapping `yaml:"entities,omitempty"`
}

// EntityMapping binds an entity name to a table.
type EntityMapping struct {
	Name          string            `yaml:"name"`
	Table         string            `yaml:"table"`
	Exclude       []string          `yaml:"exclude,omitempty"`
	Attributes    map[string]string `yaml:"attributes,omitempty"`
	Relationships []*Relationship   `yaml:"relationships,omitempty"`
}

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML data into a MappingFile.
func Parse(data []byte) (*MappingFile, error) {
	var mf MappingFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}
	if err := applyDefaults(&mf); err != nil {
		return nil, err
	}
	if err := mf.Validate(); err != nil {
		return nil, err
	}
	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *MappingFile) error {
	if mf.Version == "" {
		mf.Version = "1"
	}
	if mf.Dialect == "" {
		mf.Dialect = dialect.SQLite
	}
	d, err := dialect.Parse(mf.Dialect)
	if err != nil {
		return err
	}
	mf.Dialect = d
	mf.DSN = os.ExpandEnv(mf.DSN)
	for i := range mf.Entities {
		em := &mf.Entities[i]
		if em.Name == "" && em.Table != "" {
			em.Name = EntityName(em.Table)
		}
		if em.Table == "" && em.Name != "" {
			em.Table = inflect.Pluralize(inflect.Underscore(em.Name))
		}
	}
	return nil
}

// Validate checks the mapping for duplicate or incomplete entries.
func (mf *MappingFile) Validate() error {
	seen := make(map[string]bool, len(mf.Entities))
	for _, em := range mf.Entities {
		if em.Name == "" {
			return fmt.Errorf("mapping: entity without name or table")
		}
		if seen[em.Name] {
			return fmt.Errorf("mapping: duplicate entity %q", em.Name)
		}
		seen[em.Name] = true
	}
	for _, em := range mf.Entities {
		for _, rel := range em.Relationships {
			switch {
			case rel.Name == "":
				return fmt.Errorf("mapping: entity %q: relationship without name", em.Name)
			case rel.Direction == DirectionInvalid:
				return fmt.Errorf("mapping: entity %q: relationship %q: missing direction", em.Name, rel.Name)
			case !seen[rel.Target]:
				return fmt.Errorf("mapping: entity %q: relationship %q: unknown target %q", em.Name, rel.Name, rel.Target)
			case rel.Direction == ManyToMany && rel.Secondary == "":
				return fmt.Errorf("mapping: entity %q: relationship %q: many-to-many without secondary table", em.Name, rel.Name)
			}
		}
	}
	return nil
}

// Exclude returns the excluded column keys of the named entity.
func (mf *MappingFile) Exclude(name string) []string {
	for _, em := range mf.Entities {
		if em.Name == name {
			return em.Exclude
		}
	}
	return nil
}

// Bind builds a registry from the mapping and an inspected schema. Without
// entity mappings, every table of s but the junction tables becomes an
// entity and relationships are always inferred.
func (mf *MappingFile) Bind(s *schema.Schema) (*Registry, error) {
	r, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	if len(mf.Entities) == 0 {
		junctions := JunctionTables(s)
		for _, t := range s.Tables {
			if junctions[t.Name] {
				continue
			}
			if err := r.Add(&Entity{Name: EntityName(t.Name), Table: t}); err != nil {
				return nil, err
			}
		}
	}
	for _, em := range mf.Entities {
		t, ok := s.Table(em.Table)
		if !ok {
			return nil, fmt.Errorf("mapping: entity %q: table %q not found in schema %q", em.Name, em.Table, s.Name)
		}
		e := &Entity{
			Name:          em.Name,
			Table:         t,
			Attributes:    em.Attributes,
			Relationships: em.Relationships,
		}
		if err := r.Add(e); err != nil {
			return nil, err
		}
	}
	if mf.Infer || len(mf.Entities) == 0 {
		Infer(r, s)
	}
	return r, nil
}

// Marshal serializes a MappingFile to YAML.
func Marshal(mf *MappingFile) ([]byte, error) {
	return yaml.Marshal(mf)
}

// EntityName derives an entity name from a table name: "user_accounts"
// becomes "UserAccount".
func EntityName(table string) string {
	if i := strings.LastIndexByte(table, '.'); i >= 0 {
		table = table[i+1:]
	}
	return inflect.Camelize(inflect.Singularize(table))
}
