package graphql

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// GQLGenConfig is the subset of gqlgen.yml the model bindings live in.
// Unknown keys are not preserved by SaveGQLGenConfig.
type GQLGenConfig struct {
	SchemaFilename StringList              `yaml:"schema,omitempty"`
	Exec           ExecConfig              `yaml:"exec,omitempty"`
	Model          ModelConfig             `yaml:"model,omitempty"`
	Resolver       ResolverConfig          `yaml:"resolver,omitempty"`
	Autobind       []string                `yaml:"autobind,omitempty"`
	Models         map[string]TypeMapEntry `yaml:"models,omitempty"`
}

// ExecConfig configures the executor generation.
type ExecConfig struct {
	Filename string `yaml:"filename,omitempty"`
	Package  string `yaml:"package,omitempty"`
}

// ModelConfig configures the model generation.
type ModelConfig struct {
	Filename string `yaml:"filename,omitempty"`
	Package  string `yaml:"package,omitempty"`
}

// ResolverConfig configures the resolver generation.
type ResolverConfig struct {
	Filename         string `yaml:"filename,omitempty"`
	Package          string `yaml:"package,omitempty"`
	Layout           string `yaml:"layout,omitempty"`
	DirName          string `yaml:"dir,omitempty"`
	FilenameTemplate string `yaml:"filename_template,omitempty"`
}

// TypeMapEntry binds a GraphQL type to one or more Go types.
type TypeMapEntry struct {
	Model  StringList              `yaml:"model,omitempty"`
	Fields map[string]TypeMapField `yaml:"fields,omitempty"`
}

// TypeMapField configures a single field of a bound type.
type TypeMapField struct {
	Resolver  bool   `yaml:"resolver,omitempty"`
	FieldName string `yaml:"fieldName,omitempty"`
}

// StringList is a YAML type that can be either a string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler for StringList.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler for StringList.
func (s StringList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// LoadGQLGenConfig loads a gqlgen.yml configuration file.
func LoadGQLGenConfig(path string) (*GQLGenConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GQLGenConfig{
				Models: make(map[string]TypeMapEntry),
			}, nil
		}
		return nil, fmt.Errorf("read gqlgen config: %w", err)
	}

	var cfg GQLGenConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse gqlgen config: %w", err)
	}

	if cfg.Models == nil {
		cfg.Models = make(map[string]TypeMapEntry)
	}

	return &cfg, nil
}

// SaveGQLGenConfig saves a gqlgen.yml configuration file.
func SaveGQLGenConfig(path string, cfg *GQLGenConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal gqlgen config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	return os.WriteFile(path, data, 0o644)
}

// AddSchemaPath adds a schema path to the configuration if not already present.
func (c *GQLGenConfig) AddSchemaPath(path string) {
	if !slices.Contains(c.SchemaFilename, path) {
		c.SchemaFilename = append(c.SchemaFilename, path)
	}
}

// AddAutobind adds a package to the autobind list if not already present.
func (c *GQLGenConfig) AddAutobind(pkg string) {
	if !slices.Contains(c.Autobind, pkg) {
		c.Autobind = append(c.Autobind, pkg)
	}
}

// SetModel sets the model binding for a GraphQL type.
func (c *GQLGenConfig) SetModel(typeName string, modelPath string) {
	entry := c.Models[typeName]
	if !slices.Contains(entry.Model, modelPath) {
		entry.Model = append(entry.Model, modelPath)
	}
	c.Models[typeName] = entry
}

// Go types the custom scalars are bound to.
var scalarModels = map[string]string{
	ScalarDecimal: "github.com/99designs/gqlgen/graphql.String",
	ScalarDate:    "github.com/99designs/gqlgen/graphql.String",
	ScalarTime:    "github.com/99designs/gqlgen/graphql.Time",
	ScalarClock:   "github.com/99designs/gqlgen/graphql.String",
}

// InjectBindings adds the rendered schema path, the autobind entry of the
// model package and the custom scalar bindings. Existing bindings of the
// scalars are kept.
func (c *GQLGenConfig) InjectBindings(schemaPath, modelPackage string) {
	if schemaPath != "" {
		c.AddSchemaPath(schemaPath)
	}
	if modelPackage != "" {
		c.AddAutobind(modelPackage)
	}
	if c.Models == nil {
		c.Models = make(map[string]TypeMapEntry)
	}
	for _, scalar := range slices.Sorted(maps.Keys(scalarModels)) {
		if len(c.Models[scalar].Model) == 0 {
			c.SetModel(scalar, scalarModels[scalar])
		}
	}
}
