package dialect

import (
	"fmt"
	"strings"
)

// Database dialects supported for inspection.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Parse normalizes a dialect name as written in a mapping file or on the
// command line. "sqlite3", "postgresql", "pgx" and "mariadb" are accepted as
// aliases.
func Parse(name string) (string, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case MySQL, "mariadb":
		return MySQL, nil
	case SQLite, "sqlite3":
		return SQLite, nil
	case Postgres, "postgresql", "pgx":
		return Postgres, nil
	default:
		return "", fmt.Errorf("dialect: unsupported dialect %q", name)
	}
}
