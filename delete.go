package querykit

import (
	"strings"

	"github.com/maxshaw/querykit/qb"
)

// DeleteQuery renders DELETE FROM t [WHERE ...]. Without conditions every row
// of the table is deleted.
type DeleteQuery struct {
	table  string
	wheres qb.Conds

	bindings qb.Bindings
}

func NewDelete(table string) *DeleteQuery {
	return &DeleteQuery{table: table}
}

func (q *DeleteQuery) From(table string) *DeleteQuery {
	q.table = table
	return q
}

func (q *DeleteQuery) Where(col string, val any) *DeleteQuery {
	return q.WhereExpr(qb.Eq(col, val))
}

func (q *DeleteQuery) WhereOp(col, op string, val any) *DeleteQuery {
	return q.WhereExpr(qb.Op(col, op, val))
}

func (q *DeleteQuery) WhereMap(h qb.H) *DeleteQuery {
	return q.WhereExpr(qb.Map(h)...)
}

func (q *DeleteQuery) WhereExpr(a ...qb.Expr) *DeleteQuery {
	q.wheres.Add(qb.AND, a...)
	return q
}

func (q *DeleteQuery) OrWhere(col string, val any) *DeleteQuery {
	return q.OrWhereExpr(qb.Eq(col, val))
}

func (q *DeleteQuery) OrWhereExpr(a ...qb.Expr) *DeleteQuery {
	q.wheres.Add(qb.OR, a...)
	return q
}

func (q *DeleteQuery) Bindings() []any {
	return q.bindings.Values()
}

func (q *DeleteQuery) ToSQL() (string, []any, error) {
	if q.table == "" {
		return "", nil, ErrNoTable
	}

	var (
		sb   strings.Builder
		args qb.Bindings
	)

	sb.WriteString("DELETE FROM ")
	sb.WriteString(q.table)

	cond, err := q.wheres.Build(&args)
	if err != nil {
		return "", nil, err
	}
	if cond != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(cond)
	}

	q.bindings = args

	return sb.String(), args.Values(), nil
}
