package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/syssam/veloxconv/dialect"

	// Drivers registered with database/sql for inspection.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DriverNames maps a dialect to the database/sql driver name opened for it.
// Postgres goes through pgx by default; lib/pq stays registered under
// "postgres" and can be selected with OpenDriver.
var DriverNames = map[string]string{
	dialect.MySQL:    "mysql",
	dialect.SQLite:   "sqlite",
	dialect.Postgres: "pgx",
}

// Driver wraps a *sql.DB together with the dialect it speaks.
type Driver struct {
	db      *sql.DB
	dialect string
}

// Open opens a connection for the given dialect using its registered driver.
func Open(name, source string) (*Driver, error) {
	d, err := dialect.Parse(name)
	if err != nil {
		return nil, err
	}
	return OpenDriver(DriverNames[d], d, source)
}

// OpenDriver opens source with an explicit database/sql driver name.
func OpenDriver(driverName, name, source string) (*Driver, error) {
	d, err := dialect.Parse(name)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, source)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open %s: %w", driverName, err)
	}
	return OpenDB(d, db), nil
}

// OpenDB wraps an already opened *sql.DB with a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return &Driver{db: db, dialect: dialect}
}

// DB returns the underlying *sql.DB instance.
func (d *Driver) DB() *sql.DB { return d.db }

// Dialect returns the dialect name of the driver.
func (d *Driver) Dialect() string {
	for _, name := range []string{dialect.MySQL, dialect.SQLite, dialect.Postgres} {
		if strings.HasPrefix(d.dialect, name) {
			return name
		}
	}
	return d.dialect
}

// Ping verifies the connection is alive.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("dialect/sql: ping %s: %w", d.dialect, err)
	}
	return nil
}

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.db.Close() }
