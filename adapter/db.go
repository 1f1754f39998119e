package adapter

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrNoTx = errors.New("adapter: no transaction in progress")

// DB adapts a *sql.DB. Row-returning statements go through QueryContext,
// everything else through ExecContext so that the result can answer
// LastInsertID and AffectedRows.
type DB struct {
	db      *sql.DB
	dialect Dialect

	tx   *sql.Tx
	last sql.Result

	// id of the last insert run outside a transaction, read on the session
	// that ran it
	lastID    int64
	lastIDErr error
	hasID     bool
}

func New(db *sql.DB, dialect Dialect) *DB {
	return &DB{db: db, dialect: dialect}
}

func (a *DB) Dialect() Dialect {
	return a.dialect
}

func (a *DB) DB() *sql.DB {
	return a.db
}

func (a *DB) conn() Querier {
	if a.tx != nil {
		return a.tx
	}
	return a.db
}

func (a *DB) Execute(ctx context.Context, query string, args []any) ([]Row, error) {
	query = a.dialect.Rebind(query)

	if !returnsRows(query) {
		return nil, a.exec(ctx, query, args)
	}

	rows, err := a.conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

// exec runs a statement that returns no rows. Outside a transaction an insert
// and the lookup of its generated id share one pooled session, since engines
// like Postgres only report the id to the session that inserted it.
func (a *DB) exec(ctx context.Context, query string, args []any) error {
	insert := isInsert(query)
	if insert {
		a.hasID = false
	}

	if a.tx != nil || !insert {
		res, err := a.conn().ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		a.last = res
		return nil
	}

	conn, err := a.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	a.last = res
	a.lastID, a.lastIDErr = a.dialect.LastInsertID(ctx, conn, res)
	a.hasID = true
	return nil
}

func (a *DB) Begin(ctx context.Context) error {
	if a.tx != nil {
		return errors.New("adapter: transaction already in progress")
	}
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	a.tx = tx
	return nil
}

func (a *DB) Commit() error {
	if a.tx == nil {
		return ErrNoTx
	}
	tx := a.tx
	a.tx = nil
	return tx.Commit()
}

func (a *DB) Rollback() error {
	if a.tx == nil {
		return ErrNoTx
	}
	tx := a.tx
	a.tx = nil
	return tx.Rollback()
}

func (a *DB) LastInsertID(ctx context.Context) (int64, error) {
	if a.hasID {
		return a.lastID, a.lastIDErr
	}
	return a.dialect.LastInsertID(ctx, a.conn(), a.last)
}

func (a *DB) AffectedRows() (int64, error) {
	if a.last == nil {
		return 0, nil
	}
	return a.last.RowsAffected()
}

func (a *DB) Close() error {
	if a.tx != nil {
		_ = a.tx.Rollback()
		a.tx = nil
	}
	return a.db.Close()
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		// text columns come back as []byte from some drivers
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		out = append(out, Row{Columns: cols, Values: vals})
	}

	return out, rows.Err()
}

func isInsert(query string) bool {
	fields := strings.Fields(strings.ToUpper(query))
	return len(fields) > 0 && (fields[0] == "INSERT" || fields[0] == "REPLACE")
}

var rowKeywords = []string{"SELECT", "WITH", "SHOW", "PRAGMA", "EXPLAIN", "VALUES", "DESCRIBE"}

func returnsRows(query string) bool {
	fields := strings.Fields(strings.TrimLeft(strings.ToUpper(query), "( \t\r\n"))
	if len(fields) == 0 {
		return false
	}
	return lo.Contains(rowKeywords, fields[0]) || lo.Contains(fields, "RETURNING")
}
