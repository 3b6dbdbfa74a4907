package gen

import (
	"errors"
	"go/token"
	"log/slog"
)

// Option configures a conversion.
type Option func(*Config) error

// WithMetadata sets the registry converted models are registered with.
func WithMetadata(m *Metadata) Option {
	return func(c *Config) error {
		if m == nil {
			return NewConfigError("Metadata", nil, "metadata cannot be nil")
		}
		c.Metadata = m
		return nil
	}
}

// WithDatabase sets the database handle attached to converted models.
func WithDatabase(db *Database) Option {
	return func(c *Config) error {
		c.Database = db
		return nil
	}
}

// WithLogger sets the logger receiving the conversion records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithPackage sets the package name of generated files.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		if !token.IsIdentifier(pkg) {
			return NewConfigError("Package", pkg, "package must be a valid identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithFramework sets the import path root of the packages referenced by
// generated files. For example: "github.com/org/project/velox".
func WithFramework(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("Framework", nil, "framework cannot be empty")
		}
		c.Framework = path
		return nil
	}
}

// WithTarget sets the directory generated files are written to.
func WithTarget(target string) Option {
	return func(c *Config) error {
		if target == "" {
			return NewConfigError("Target", nil, "target cannot be empty")
		}
		c.Target = target
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithExclude leaves the given columns of the named entity out of its
// converted model.
func WithExclude(entity string, columns ...string) Option {
	return func(c *Config) error {
		if entity == "" {
			return NewConfigError("Exclude", nil, "entity name cannot be empty")
		}
		if c.Exclude == nil {
			c.Exclude = make(map[string][]string)
		}
		c.Exclude[entity] = append(c.Exclude[entity], columns...)
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options. Unset settings
// take their default values.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	c.defaults()
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
