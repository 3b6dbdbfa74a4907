package gen

import (
	"fmt"
	"log/slog"
	"slices"
)

const (
	// DefaultPackage is the package name of the generated schema files.
	DefaultPackage = "schema"
	// DefaultFramework is the import path root of the declaration builders.
	DefaultFramework = "github.com/syssam/veloxconv"
	// DefaultHeader is the comment written at the top of generated files.
	DefaultHeader = "// Code generated by veloxconv. DO NOT EDIT."
)

// Config holds the global settings of a conversion.
type Config struct {
	// Metadata is the registry converted models are registered with.
	Metadata *Metadata
	// Database is the database handle attached to every converted model.
	// It is passed through unexamined.
	Database *Database
	// Logger receives the conversion records.
	Logger *slog.Logger
	// Package is the name of the package of the generated files.
	Package string
	// Framework is the import path root of the velox, field, edge, index
	// and sqlschema packages referenced by generated files.
	Framework string
	// Target is the directory generated files are written to.
	Target string
	// Header is the comment at the top of each generated file.
	Header string
	// Exclude lists the columns left out of conversion, by entity name.
	Exclude map[string][]string
}

// OutputConfig groups the settings of generated files.
type OutputConfig struct {
	Target    string
	Package   string
	Framework string
	Header    string
}

// Output returns the settings of generated files.
func (c *Config) Output() OutputConfig {
	return OutputConfig{
		Target:    c.Target,
		Package:   c.Package,
		Framework: c.Framework,
		Header:    c.Header,
	}
}

// Excluded reports if the column key of the named entity is excluded.
func (c *Config) Excluded(entity, key string) bool {
	return slices.Contains(c.Exclude[entity], key)
}

func (c *Config) defaults() {
	if c.Metadata == nil {
		c.Metadata = NewMetadata("")
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Package == "" {
		c.Package = DefaultPackage
	}
	if c.Framework == "" {
		c.Framework = DefaultFramework
	}
	if c.Header == "" {
		c.Header = DefaultHeader
	}
}

// pkg returns the import path of a framework package.
func (c *Config) pkg(name string) string {
	if name == "" {
		return c.Framework
	}
	return fmt.Sprintf("%s/%s", c.Framework, name)
}
