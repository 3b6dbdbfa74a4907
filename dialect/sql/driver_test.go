package sql

import (
	"context"
	"errors"
	"testing"

	"github.com/syssam/veloxconv/dialect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	drv, err := Open("sqlite3", "file:driver_test?mode=memory")
	require.NoError(t, err)
	defer drv.Close()
	assert.Equal(t, dialect.SQLite, drv.Dialect())
	require.NoError(t, drv.Ping(context.Background()))
}

func TestOpenUnknownDialect(t *testing.T) {
	_, err := Open("oracle", "")
	require.EqualError(t, err, `dialect: unsupported dialect "oracle"`)
}

func TestDriverNames(t *testing.T) {
	assert.Equal(t, "sqlite", DriverNames[dialect.SQLite])
	assert.Equal(t, "mysql", DriverNames[dialect.MySQL])
	assert.Equal(t, "pgx", DriverNames[dialect.Postgres])
}

func TestPingError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	drv := OpenDB(dialect.Postgres, db)
	err = drv.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	require.NoError(t, mock.ExpectationsWereMet())
}
