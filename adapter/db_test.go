package adapter

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *DB {
	t.Helper()

	db, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Execute(context.Background(), "CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, age INTEGER)", nil)
	require.NoError(t, err)
	return db
}

func TestDBExecuteAndScan(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	rows, err := db.Execute(ctx, "INSERT INTO users (name, age) VALUES (?, ?), (?, ?)", []any{"Alice", 28, "Bob", 35})
	require.NoError(t, err)
	assert.Nil(t, rows)

	id, err := db.LastInsertID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	n, err := db.AffectedRows()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	rows, err = db.Execute(ctx, "SELECT id, name, age FROM users WHERE age > ? ORDER BY id ASC", []any{30})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"id", "name", "age"}, rows[0].Columns)
	assert.Equal(t, []any{int64(2), "Bob", int64(35)}, rows[0].Values)
}

func TestDBAffectedRowsBeforeAnyStatement(t *testing.T) {
	db, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	n, err := db.AffectedRows()
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = db.LastInsertID(context.Background())
	assert.Error(t, err)
}

func TestDBTransaction(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	require.NoError(t, db.Begin(ctx))
	assert.Error(t, db.Begin(ctx), "nested begin")

	_, err := db.Execute(ctx, "INSERT INTO users (name) VALUES (?)", []any{"Carol"})
	require.NoError(t, err)
	require.NoError(t, db.Rollback())

	rows, err := db.Execute(ctx, "SELECT COUNT(*) AS n FROM users", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows[0].Scalar())

	require.NoError(t, db.Begin(ctx))
	_, err = db.Execute(ctx, "INSERT INTO users (name) VALUES (?)", []any{"Dave"})
	require.NoError(t, err)
	require.NoError(t, db.Commit())

	rows, err = db.Execute(ctx, "SELECT name FROM users", nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Dave", rows[0].Scalar())

	assert.ErrorIs(t, db.Commit(), ErrNoTx)
	assert.ErrorIs(t, db.Rollback(), ErrNoTx)
}

func TestDBEngineErrorsPassThrough(t *testing.T) {
	db := openMemory(t)

	_, err := db.Execute(context.Background(), "SELECT * FROM missing", nil)
	assert.Error(t, err)

	_, err = db.Execute(context.Background(), "INSERT INTO users (age) VALUES (?)", []any{1})
	assert.Error(t, err, "name is NOT NULL")
}

// sessionDialect records which handle the generated id is read through.
type sessionDialect struct {
	Dialect
	seen *[]string
}

func (d sessionDialect) LastInsertID(ctx context.Context, q Querier, res sql.Result) (int64, error) {
	switch q.(type) {
	case *sql.Conn:
		*d.seen = append(*d.seen, "conn")
	case *sql.Tx:
		*d.seen = append(*d.seen, "tx")
	default:
		*d.seen = append(*d.seen, "pool")
	}
	return d.Dialect.LastInsertID(ctx, q, res)
}

func TestDBLastInsertIDUsesInsertSession(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	var seen []string
	db.dialect = sessionDialect{Dialect: SQLite, seen: &seen}

	_, err := db.Execute(ctx, "INSERT INTO users (name) VALUES (?)", []any{"Alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"conn"}, seen, "read right after the insert")

	_, err = db.Execute(ctx, "UPDATE users SET age = ?", []any{30})
	require.NoError(t, err)
	_, err = db.Execute(ctx, "SELECT * FROM users", nil)
	require.NoError(t, err)

	id, err := db.LastInsertID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, []string{"conn"}, seen, "not read again through the pool")

	require.NoError(t, db.Begin(ctx))
	_, err = db.Execute(ctx, "INSERT INTO users (name) VALUES (?)", []any{"Bob"})
	require.NoError(t, err)
	id, err = db.LastInsertID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
	require.NoError(t, db.Commit())
	assert.Equal(t, []string{"conn", "tx"}, seen)
}

func TestDBInsertIDErrorIsDeferred(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	var seen []string
	db.dialect = sessionDialect{Dialect: failingIDDialect{SQLite}, seen: &seen}

	_, err := db.Execute(ctx, "INSERT INTO users (name) VALUES (?)", []any{"Alice"})
	require.NoError(t, err, "insert succeeds even when the id cannot be read")

	_, err = db.LastInsertID(ctx)
	assert.EqualError(t, err, "lastval is not yet defined in this session")
}

type failingIDDialect struct {
	Dialect
}

func (failingIDDialect) LastInsertID(context.Context, Querier, sql.Result) (int64, error) {
	return 0, errors.New("lastval is not yet defined in this session")
}
