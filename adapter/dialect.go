package adapter

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/mitranim/sqlp"
	"github.com/pkg/errors"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect captures what differs between engines at execution time.
type Dialect interface {
	Name() string
	// Rebind rewrites ? placeholders into the engine's native form.
	Rebind(query string) string
	LastInsertID(ctx context.Context, q Querier, res sql.Result) (int64, error)
}

var (
	MySQL    Dialect = questionDialect{name: "mysql"}
	SQLite   Dialect = questionDialect{name: "sqlite"}
	Postgres Dialect = postgresDialect{}
)

// DialectFor maps a driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql", "pgx", "pq":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return nil, errors.Errorf("adapter: unknown dialect %q", driver)
}

type questionDialect struct {
	name string
}

func (d questionDialect) Name() string { return d.name }

func (questionDialect) Rebind(query string) string { return query }

func (questionDialect) LastInsertID(_ context.Context, _ Querier, res sql.Result) (int64, error) {
	if res == nil {
		return 0, errors.New("adapter: no statement executed")
	}
	return res.LastInsertId()
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

// Rebind numbers placeholders $1, $2, ... Quoted literals and comments are
// left untouched.
func (postgresDialect) Rebind(query string) string {
	var (
		buf = make([]byte, 0, len(query)+8)
		n   int
		tok = sqlp.Tokenizer{Source: query}
	)

	for {
		node := tok.Next()
		if node == nil {
			break
		}

		text, ok := node.(sqlp.NodeText)
		if !ok {
			node.Append(&buf)
			continue
		}

		for _, part := range strings.SplitAfter(string(text), "?") {
			if strings.HasSuffix(part, "?") {
				n++
				buf = append(buf, part[:len(part)-1]...)
				buf = append(buf, '$')
				buf = strconv.AppendInt(buf, int64(n), 10)
				continue
			}
			buf = append(buf, part...)
		}
	}

	return string(buf)
}

func (postgresDialect) LastInsertID(ctx context.Context, q Querier, _ sql.Result) (int64, error) {
	var id int64
	if err := q.QueryRowContext(ctx, "SELECT lastval()").Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
