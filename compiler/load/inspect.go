package load

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/veloxconv/dialect"
	"github.com/syssam/veloxconv/dialect/sql"
)

// DefaultSlowInspection is the duration above which an inspection is
// reported as slow.
const DefaultSlowInspection = 5 * time.Second

// Inspector reads table definitions from a live database.
type Inspector struct {
	drv    *sql.Driver
	logger *slog.Logger
	slow   time.Duration
}

// InspectorOption configures an Inspector.
type InspectorOption func(*Inspector)

// WithInspectorLogger sets the logger of the inspector.
func WithInspectorLogger(l *slog.Logger) InspectorOption {
	return func(i *Inspector) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithSlowThreshold sets the duration above which an inspection is logged
// as slow.
func WithSlowThreshold(d time.Duration) InspectorOption {
	return func(i *Inspector) { i.slow = d }
}

// NewInspector returns an inspector reading through drv.
func NewInspector(drv *sql.Driver, opts ...InspectorOption) *Inspector {
	i := &Inspector{drv: drv, logger: slog.Default(), slow: DefaultSlowInspection}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// atlas opens the atlas driver matching the connection dialect.
func (i *Inspector) atlas() (migrate.Driver, error) {
	switch d := i.drv.Dialect(); d {
	case dialect.SQLite:
		return sqlite.Open(i.drv.DB())
	case dialect.MySQL:
		return mysql.Open(i.drv.DB())
	case dialect.Postgres:
		return postgres.Open(i.drv.DB())
	default:
		return nil, fmt.Errorf("load: inspection of dialect %q is not supported", d)
	}
}

// InspectSchema inspects the named schema. An empty name inspects the
// schema the connection is attached to. When tables is not empty, only
// those tables are read.
func (i *Inspector) InspectSchema(ctx context.Context, name string, tables ...string) (*schema.Schema, error) {
	drv, err := i.atlas()
	if err != nil {
		return nil, fmt.Errorf("load: open %s inspector: %w", i.drv.Dialect(), err)
	}
	start := time.Now()
	s, err := drv.InspectSchema(ctx, name, &schema.InspectOptions{Tables: tables})
	if err != nil {
		return nil, fmt.Errorf("load: inspect schema %q: %w", name, err)
	}
	if d := time.Since(start); i.slow > 0 && d > i.slow {
		i.logger.Warn("slow schema inspection detected",
			"dialect", i.drv.Dialect(),
			"schema", name,
			"tables", len(s.Tables),
			"duration", d,
		)
	}
	i.logger.Debug("schema inspected", "dialect", i.drv.Dialect(), "schema", name, "tables", len(s.Tables))
	return s, nil
}
