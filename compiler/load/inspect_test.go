package load_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"ariga.io/atlas/sql/schema"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxconv/compiler/load"
	"github.com/syssam/veloxconv/dialect"
	"github.com/syssam/veloxconv/dialect/sql"
	"github.com/syssam/veloxconv/schema/field"
)

func TestInspectSQLite(t *testing.T) {
	ctx := context.Background()
	drv, err := sql.Open(dialect.SQLite, "file:inspect_test?mode=memory")
	require.NoError(t, err)
	defer drv.Close()
	drv.DB().SetMaxOpenConns(1)

	for _, stmt := range []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY, name VARCHAR(60) NOT NULL, fullname TEXT, salary DECIMAL(10, 2))`,
		`CREATE TABLE addresses (
			id INTEGER PRIMARY KEY,
			email_address VARCHAR(255) NOT NULL,
			user_id INTEGER REFERENCES users(id) ON UPDATE CASCADE ON DELETE CASCADE
		)`,
	} {
		_, err := drv.DB().ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	insp := load.NewInspector(drv,
		load.WithInspectorLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		load.WithSlowThreshold(time.Nanosecond),
	)
	s, err := insp.InspectSchema(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "slow schema inspection detected")

	users, ok := s.Table("users")
	require.True(t, ok, spew.Sdump(s.Tables))
	require.Len(t, users.Columns, 4)
	e := &load.Entity{Name: "User", Table: users}
	id, _ := e.Column("id")
	assert.True(t, e.PrimaryKey(id))
	assert.Equal(t, field.TagInteger, load.TypeTag(id))
	name, _ := e.Column("name")
	assert.Equal(t, field.TagString, load.TypeTag(name))
	assert.Equal(t, 60, load.Length(name))
	assert.False(t, load.Nullable(name))
	fullname, _ := e.Column("fullname")
	assert.Equal(t, field.TagText, load.TypeTag(fullname))
	salary, _ := e.Column("salary")
	assert.Equal(t, field.TagDecimal, load.TypeTag(salary))
	assert.Equal(t, 10, load.Precision(salary))
	assert.Equal(t, 2, load.Scale(salary))

	addrs, ok := s.Table("addresses")
	require.True(t, ok)
	require.Len(t, addrs.ForeignKeys, 1, spew.Sdump(addrs.ForeignKeys))
	fk := addrs.ForeignKeys[0]
	assert.Equal(t, "users", fk.RefTable.Name)
	assert.Equal(t, schema.Cascade, fk.OnDelete)
	assert.Equal(t, schema.Cascade, fk.OnUpdate)

	s, err = insp.InspectSchema(ctx, "", "addresses")
	require.NoError(t, err)
	assert.Len(t, s.Tables, 1)
}

func TestInspectOpenError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(".*").WillReturnError(errors.New("connection reset"))

	_, err = load.NewInspector(sql.OpenDB(dialect.MySQL, db)).InspectSchema(context.Background(), "app")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load: open mysql inspector")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestInspectUnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	_, err = load.NewInspector(sql.OpenDB("oracle", db)).InspectSchema(context.Background(), "app")
	require.EqualError(t, err, `load: open oracle inspector: load: inspection of dialect "oracle" is not supported`)
}
