// Package dialect names the database dialects veloxconv can read source
// schemas from.
//
// # Supported Dialects
//
//   - Postgres: PostgreSQL database
//   - MySQL: MySQL/MariaDB database
//   - SQLite: SQLite database
//
// # Dialect Constants
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// Names found in mapping files go through Parse, which also accepts the
// common aliases:
//
//	d, err := dialect.Parse("postgresql") // dialect.Postgres
//
// Opening a connection for inspection lives in the dialect/sql subpackage:
//
//	import (
//	    "github.com/syssam/veloxconv/dialect"
//	    "github.com/syssam/veloxconv/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.SQLite, "file:app.db")
package dialect
