// Package sql opens database connections used to inspect a source schema.
//
// Importing the package registers the database/sql drivers for every
// supported dialect:
//
//   - SQLite: modernc.org/sqlite ("sqlite")
//   - MySQL: github.com/go-sql-driver/mysql ("mysql")
//   - PostgreSQL: github.com/jackc/pgx/v5/stdlib ("pgx") and github.com/lib/pq ("postgres")
//
// # Opening
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://localhost/app")
//	if err != nil {
//	    return err
//	}
//	defer drv.Close()
//
// OpenDriver picks the database/sql driver explicitly, and OpenDB wraps a
// connection opened elsewhere, such as a sqlmock database in tests:
//
//	db, mock, _ := sqlmock.New()
//	drv := sql.OpenDB(dialect.MySQL, db)
package sql
