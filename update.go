package querykit

import (
	"strings"

	"github.com/maxshaw/querykit/qb"
)

type assignment struct {
	col string
	val any
}

// UpdateQuery renders UPDATE t SET ... [WHERE ...]. Assignment bindings always
// precede WHERE bindings, whatever order Set and Where were called in.
type UpdateQuery struct {
	table  string
	sets   []assignment
	wheres qb.Conds

	bindings qb.Bindings
}

func NewUpdate(table string) *UpdateQuery {
	return &UpdateQuery{table: table}
}

func (q *UpdateQuery) Table(table string) *UpdateQuery {
	q.table = table
	return q
}

// Set assigns val to col. Setting a column again replaces the value but keeps
// its original position.
func (q *UpdateQuery) Set(col string, val any) *UpdateQuery {
	for i := range q.sets {
		if q.sets[i].col == col {
			q.sets[i].val = val
			return q
		}
	}
	q.sets = append(q.sets, assignment{col: col, val: val})
	return q
}

// SetMap assigns every entry of h, in key order.
func (q *UpdateQuery) SetMap(h qb.H) *UpdateQuery {
	for _, k := range h.Keys() {
		q.Set(k, h[k])
	}
	return q
}

func (q *UpdateQuery) Where(col string, val any) *UpdateQuery {
	return q.WhereExpr(qb.Eq(col, val))
}

func (q *UpdateQuery) WhereOp(col, op string, val any) *UpdateQuery {
	return q.WhereExpr(qb.Op(col, op, val))
}

func (q *UpdateQuery) WhereMap(h qb.H) *UpdateQuery {
	return q.WhereExpr(qb.Map(h)...)
}

func (q *UpdateQuery) WhereExpr(a ...qb.Expr) *UpdateQuery {
	q.wheres.Add(qb.AND, a...)
	return q
}

func (q *UpdateQuery) OrWhere(col string, val any) *UpdateQuery {
	return q.OrWhereExpr(qb.Eq(col, val))
}

func (q *UpdateQuery) OrWhereExpr(a ...qb.Expr) *UpdateQuery {
	q.wheres.Add(qb.OR, a...)
	return q
}

func (q *UpdateQuery) Bindings() []any {
	return q.bindings.Values()
}

func (q *UpdateQuery) ToSQL() (string, []any, error) {
	if q.table == "" {
		return "", nil, ErrNoTable
	}
	if len(q.sets) == 0 {
		return "", nil, ErrNoAssignments
	}

	var (
		sb   strings.Builder
		args qb.Bindings
	)

	sb.WriteString("UPDATE ")
	sb.WriteString(q.table)
	sb.WriteString(" SET ")

	for i, set := range q.sets {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(set.col)
		sb.WriteString(" = ?")
		args.Add(set.val)
	}

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
