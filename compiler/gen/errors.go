package gen

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by the typed errors of the converter.
var (
	// ErrInvalidSchema is matched by errors converting an entity.
	ErrInvalidSchema = errors.New("veloxconv: entity cannot be converted")
	// ErrMissingConfig is matched by invalid or missing options.
	ErrMissingConfig = errors.New("veloxconv: invalid option")
	// ErrInvalidEdge is matched by relations that cannot be wired.
	ErrInvalidEdge = errors.New("veloxconv: relation cannot be wired")
	// ErrGenerationFailed is matched by formatting, writing and export errors.
	ErrGenerationFailed = errors.New("veloxconv: output failed")
)

// SchemaError reports an entity or column that has no velox counterpart.
type SchemaError struct {
	Entity  string // Source entity name
	Column  string // Column key, if the error is about one column
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("veloxconv: cannot convert")
	if e.Entity != "" {
		b.WriteString(" entity ")
		b.WriteString(e.Entity)
	}
	if e.Column != "" {
		b.WriteString(" column ")
		b.WriteString(e.Column)
	}
	writeDetail(&b, e.Message, e.Cause)
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error { return e.Cause }

// Is matches ErrInvalidSchema.
func (e *SchemaError) Is(target error) bool { return target == ErrInvalidSchema }

// NewSchemaError returns a SchemaError for the entity and column.
func NewSchemaError(entity, column, message string, cause error) *SchemaError {
	return &SchemaError{Entity: entity, Column: column, Message: message, Cause: cause}
}

// ConfigError reports an invalid converter option.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("veloxconv: option %s: %s (got %v)", e.Option, e.Message, e.Value)
	}
	return fmt.Sprintf("veloxconv: option %s: %s", e.Option, e.Message)
}

// Is matches ErrMissingConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrMissingConfig }

// NewConfigError returns a ConfigError for the option.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// EdgeError reports a relationship that cannot be wired between two models.
type EdgeError struct {
	From    string // Model declaring the relation
	To      string // Target model
	Edge    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *EdgeError) Error() string {
	var b strings.Builder
	b.WriteString("veloxconv: relation")
	if e.Edge != "" {
		b.WriteString(" ")
		b.WriteString(e.Edge)
	}
	switch {
	case e.From != "" && e.To != "":
		fmt.Fprintf(&b, " (%s -> %s)", e.From, e.To)
	case e.From != "":
		b.WriteString(" of ")
		b.WriteString(e.From)
	}
	writeDetail(&b, e.Message, e.Cause)
	return b.String()
}

// Unwrap returns the underlying error.
func (e *EdgeError) Unwrap() error { return e.Cause }

// Is matches ErrInvalidEdge.
func (e *EdgeError) Is(target error) bool { return target == ErrInvalidEdge }

// NewEdgeError returns an EdgeError for the relation edgeName of from.
func NewEdgeError(from, to, edgeName, message string, cause error) *EdgeError {
	return &EdgeError{From: from, To: to, Edge: edgeName, Message: message, Cause: cause}
}

// GenerationError reports a failure producing output from converted models.
type GenerationError struct {
	Phase   string // "format", "write" or "export"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("veloxconv: ")
	b.WriteString(cmp.Or(e.Phase, "output"))
	if e.File != "" {
		b.WriteString(" ")
		b.WriteString(e.File)
	}
	writeDetail(&b, e.Message, e.Cause)
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error { return e.Cause }

// Is matches ErrGenerationFailed.
func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// NewGenerationError returns a GenerationError for the phase and file.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{Phase: phase, File: file, Message: message, Cause: cause}
}

// writeDetail appends ": message: cause", skipping empty parts.
func writeDetail(b *strings.Builder, message string, cause error) {
	if message != "" {
		b.WriteString(": ")
		b.WriteString(message)
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
}

// IsSchemaError reports whether err wraps a SchemaError.
func IsSchemaError(err error) bool {
	var target *SchemaError
	return errors.As(err, &target)
}

// IsConfigError reports whether err wraps a ConfigError.
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsEdgeError reports whether err wraps an EdgeError.
func IsEdgeError(err error) bool {
	var target *EdgeError
	return errors.As(err, &target)
}

// IsGenerationError reports whether err wraps a GenerationError.
func IsGenerationError(err error) bool {
	var target *GenerationError
	return errors.As(err, &target)
}
