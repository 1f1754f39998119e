// Package adapter is the boundary between rendered SQL and a database engine.
// Statements arrive with dialect-neutral ? placeholders; each adapter
// translates them to what its engine expects and keeps bindings in order.
package adapter

import "context"

// Adapter executes rendered statements against one engine. Implementations
// are not safe for concurrent use while a transaction is open.
type Adapter interface {
	Execute(ctx context.Context, query string, args []any) ([]Row, error)

	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	// LastInsertID reports the identifier generated by the last insert.
	LastInsertID(ctx context.Context) (int64, error)
	// AffectedRows reports the rows changed by the last statement.
	AffectedRows() (int64, error)

	Close() error
}

// Row is one result row with its columns in select order.
type Row struct {
	Columns []string
	Values  []any
}

func (r Row) Get(col string) (any, bool) {
	for i, c := range r.Columns {
		if c == col {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Scalar returns the first column, or nil for an empty row.
func (r Row) Scalar() any {
	if len(r.Values) == 0 {
		return nil
	}
	return r.Values[0]
}

func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.Columns))
	for i, c := range r.Columns {
		m[c] = r.Values[i]
	}
	return m
}
