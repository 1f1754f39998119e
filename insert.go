package querykit

import (
	"strings"

	"github.com/maxshaw/querykit/qb"
)

// InsertQuery renders a multi-row INSERT. Every row must carry the same
// columns as the first one; later rows are read by those columns and not
// checked further, so a missing key binds NULL.
type InsertQuery struct {
	table string
	cols  []string
	rows  []qb.H

	bindings qb.Bindings
}

func NewInsert(table string) *InsertQuery {
	return &InsertQuery{table: table}
}

func (q *InsertQuery) Into(table string) *InsertQuery {
	q.table = table
	return q
}

// Columns fixes the column list and its order. Without it the first row's
// keys are used in sorted order.
func (q *InsertQuery) Columns(cols ...string) *InsertQuery {
	q.cols = cols
	return q
}

func (q *InsertQuery) Values(rows ...qb.H) *InsertQuery {
	q.rows = append(q.rows, rows...)
	return q
}

func (q *InsertQuery) Bindings() []any {
	return q.bindings.Values()
}

func (q *InsertQuery) ToSQL() (string, []any, error) {
	if q.table == "" {
		return "", nil, ErrNoTable
	}
	if len(q.rows) == 0 {
		return "", nil, ErrNoValues
	}

	columns := q.cols
	if len(columns) == 0 {
		columns = q.rows[0].Keys()
	}
	if len(columns) == 0 {
		return "", nil, ErrNoValues
	}

	var (
		sb      strings.Builder
		args    qb.Bindings
		holders = "(" + qb.Placeholders(len(columns)) + ")"
	)

	sb.WriteString("INSERT INTO ")
	sb.WriteString(q.table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(") VALUES ")

	for i, row := range q.rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(holders)
		for _, col := range columns {
			args.Add(row[col])
		}
	}

	q.bindings = args

	return sb.String(), args.Values(), nil
}
