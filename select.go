package querykit

import (
	"strconv"
	"strings"

	"github.com/maxshaw/querykit/qb"
	"github.com/samber/lo"
)

const defaultPerPage = 15

type selectItem struct {
	col  string
	expr Renderer
}

type union struct {
	kind  qb.UnionKind
	query Renderer
}

// SelectQuery renders
//
//	SELECT [DISTINCT] cols FROM t [joins] [WHERE] [GROUP BY] [HAVING] [ORDER BY] [LIMIT] [OFFSET] [UNION ...]
//
// in that fixed order. LIMIT, OFFSET and ORDER BY belong to the primary
// statement; union branches are appended after it.
type SelectQuery struct {
	table string

	selects  []selectItem
	distinct bool

	joins   []qb.Join
	wheres  qb.Conds
	groups  []string
	havings qb.Conds
	orders  []qb.Order

	offset, limit int

	unions []union

	bindings qb.Bindings
}

func NewSelect(table string) *SelectQuery {
	return &SelectQuery{table: table, offset: -1, limit: -1}
}

func (q *SelectQuery) From(table string) *SelectQuery {
	q.table = table
	return q
}

func (q *SelectQuery) Table() string {
	return q.table
}

// Select appends columns to the select list. Calling it with no columns
// appends *.
func (q *SelectQuery) Select(cols ...string) *SelectQuery {
	if len(cols) == 0 {
		cols = []string{"*"}
	}
	for _, col := range cols {
		q.selects = append(q.selects, selectItem{col: col})
	}
	return q
}

// SelectCase appends a CASE expression. Its bindings are placed ahead of any
// WHERE bindings, in select list order.
func (q *SelectQuery) SelectCase(c *qb.Case) *SelectQuery {
	q.selects = append(q.selects, selectItem{expr: c})
	return q
}

func (q *SelectQuery) Distinct() *SelectQuery {
	q.distinct = true
	return q
}

// Where adds col = val.
func (q *SelectQuery) Where(col string, val any) *SelectQuery {
	return q.WhereExpr(qb.Eq(col, val))
}

func (q *SelectQuery) WhereOp(col, op string, val any) *SelectQuery {
	return q.WhereExpr(qb.Op(col, op, val))
}

// WhereMap adds one equality per key, joined with AND.
func (q *SelectQuery) WhereMap(h qb.H) *SelectQuery {
	return q.WhereExpr(qb.Map(h)...)
}

func (q *SelectQuery) WhereExpr(a ...qb.Expr) *SelectQuery {
	q.wheres.Add(qb.AND, a...)
	return q
}

func (q *SelectQuery) OrWhere(col string, val any) *SelectQuery {
	return q.OrWhereExpr(qb.Eq(col, val))
}

func (q *SelectQuery) OrWhereOp(col, op string, val any) *SelectQuery {
	return q.OrWhereExpr(qb.Op(col, op, val))
}

func (q *SelectQuery) OrWhereExpr(a ...qb.Expr) *SelectQuery {
	q.wheres.Add(qb.OR, a...)
	return q
}

func (q *SelectQuery) WhereIn(col string, vals ...any) *SelectQuery {
	return q.WhereExpr(qb.In(col, vals...))
}

func (q *SelectQuery) OrWhereIn(col string, vals ...any) *SelectQuery {
	return q.OrWhereExpr(qb.In(col, vals...))
}

func (q *SelectQuery) WhereNotIn(col string, vals ...any) *SelectQuery {
	return q.WhereExpr(qb.NotIn(col, vals...))
}

func (q *SelectQuery) WhereNull(col string) *SelectQuery {
	return q.WhereExpr(qb.Null(col))
}

func (q *SelectQuery) OrWhereNull(col string) *SelectQuery {
	return q.OrWhereExpr(qb.Null(col))
}

func (q *SelectQuery) WhereNotNull(col string) *SelectQuery {
	return q.WhereExpr(qb.NotNull(col))
}

func (q *SelectQuery) WhereBetween(col string, min, max any) *SelectQuery {
	return q.WhereExpr(qb.Between(col, min, max))
}

// WhereRaw adds sql verbatim. args must match the ? markers in sql.
func (q *SelectQuery) WhereRaw(sql string, args ...any) *SelectQuery {
	return q.WhereExpr(qb.Raw(sql, args...))
}

func (q *SelectQuery) OrWhereRaw(sql string, args ...any) *SelectQuery {
	return q.OrWhereExpr(qb.Raw(sql, args...))
}

// WhereExists adds EXISTS (sub). sub is rendered together with q.
func (q *SelectQuery) WhereExists(sub Renderer) *SelectQuery {
	return q.WhereExpr(qb.Exists(sub))
}

func (q *SelectQuery) WhereNotExists(sub Renderer) *SelectQuery {
	return q.WhereExpr(qb.NotExists(sub))
}

func (q *SelectQuery) Join(table, first, op, second string) *SelectQuery {
	return q.join(qb.InnerJoin, table, first, op, second)
}

// JoinUsing joins on col = col.
func (q *SelectQuery) JoinUsing(table, col string) *SelectQuery {
	return q.join(qb.InnerJoin, table, col, "=", col)
}

func (q *SelectQuery) LeftJoin(table, first, op, second string) *SelectQuery {
	return q.join(qb.LeftJoin, table, first, op, second)
}

func (q *SelectQuery) LeftJoinUsing(table, col string) *SelectQuery {
	return q.join(qb.LeftJoin, table, col, "=", col)
}

func (q *SelectQuery) RightJoin(table, first, op, second string) *SelectQuery {
	return q.join(qb.RightJoin, table, first, op, second)
}

func (q *SelectQuery) RightJoinUsing(table, col string) *SelectQuery {
	return q.join(qb.RightJoin, table, col, "=", col)
}

func (q *SelectQuery) CrossJoin(table string) *SelectQuery {
	q.joins = append(q.joins, qb.Join{Kind: qb.CrossJoin, Table: table})
	return q
}

func (q *SelectQuery) join(kind qb.JoinKind, table, first, op, second string) *SelectQuery {
	q.joins = append(q.joins, qb.Join{Kind: kind, Table: table, Left: first, Op: op, Right: second})
	return q
}

// OrderBy appends col with the given direction, ascending by default.
func (q *SelectQuery) OrderBy(col string, sortBy ...qb.SortBy) *SelectQuery {
	dir := qb.Ascend
	if len(sortBy) > 0 && sortBy[0] == qb.Descend {
		dir = qb.Descend
	}
	q.orders = append(q.orders, qb.Order{Col: col, Dir: dir})
	return q
}

func (q *SelectQuery) OrderByDesc(col string) *SelectQuery {
	return q.OrderBy(col, qb.Descend)
}

func (q *SelectQuery) OrderByRaw(raw string) *SelectQuery {
	q.orders = append(q.orders, qb.Order{Raw: raw})
	return q
}

func (q *SelectQuery) GroupBy(cols ...string) *SelectQuery {
	q.groups = append(q.groups, cols...)
	return q
}

func (q *SelectQuery) Having(col string, val any) *SelectQuery {
	return q.HavingOp(col, "=", val)
}

func (q *SelectQuery) HavingOp(col, op string, val any) *SelectQuery {
	q.havings.Add(qb.AND, qb.Op(col, op, val))
	return q
}

// Limit sets LIMIT; a negative value removes it.
func (q *SelectQuery) Limit(a int) *SelectQuery {
	q.limit = max(a, -1)
	return q
}

// Offset sets OFFSET; a negative value removes it.
func (q *SelectQuery) Offset(a int) *SelectQuery {
	q.offset = max(a, -1)
	return q
}

func (q *SelectQuery) Take(a int) *SelectQuery {
	return q.Limit(a)
}

func (q *SelectQuery) Skip(a int) *SelectQuery {
	return q.Offset(a)
}

// Page selects the 1-based page n of perPage rows.
func (q *SelectQuery) Page(n, perPage int) *SelectQuery {
	if n < 1 {
		n = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return q.Offset((n - 1) * perPage).Limit(perPage)
}

// Count selects COUNT(col) as count, COUNT(*) when col is omitted.
func (q *SelectQuery) Count(col ...string) *SelectQuery {
	c := "*"
	if len(col) > 0 && col[0] != "" {
		c = col[0]
	}
	return q.aggregate("COUNT", c, "count")
}

func (q *SelectQuery) Avg(col string) *SelectQuery {
	return q.aggregate("AVG", col, "avg")
}

func (q *SelectQuery) Sum(col string) *SelectQuery {
	return q.aggregate("SUM", col, "sum")
}

func (q *SelectQuery) Min(col string) *SelectQuery {
	return q.aggregate("MIN", col, "min")
}

func (q *SelectQuery) Max(col string) *SelectQuery {
	return q.aggregate("MAX", col, "max")
}

func (q *SelectQuery) aggregate(fn, col, alias string) *SelectQuery {
	return q.Select(fn + "(" + col + ") as " + alias)
}

func (q *SelectQuery) Union(other Renderer) *SelectQuery {
	q.unions = append(q.unions, union{kind: qb.Union, query: other})
	return q
}

func (q *SelectQuery) UnionAll(other Renderer) *SelectQuery {
	q.unions = append(q.unions, union{kind: qb.UnionAll, query: other})
	return q
}

// Bindings returns the bindings of the last successful ToSQL.
func (q *SelectQuery) Bindings() []any {
	return q.bindings.Values()
}

func (q *SelectQuery) ToSQL() (string, []any, error) {
	if q.table == "" {
		return "", nil, ErrNoTable
	}

	var (
		sb   strings.Builder
		args qb.Bindings
	)

	sb.WriteString("SELECT ")
	if q.distinct {
		sb.WriteString("DISTINCT ")
	}

	if len(q.selects) < 1 {
		sb.WriteString("*")
	} else {
		for i, item := range q.selects {
			if i > 0 {
				sb.WriteString(", ")
			}
			if item.expr == nil {
				sb.WriteString(item.col)
				continue
			}
			out, a, err := item.expr.ToSQL()
			if err != nil {
				return "", nil, err
			}
			sb.WriteString(out)
			args.Add(a...)
		}
	}

	sb.WriteString(" FROM ")
	sb.WriteString(q.table)

	for _, join := range q.joins {
		sb.WriteString(" ")
		sb.WriteString(join.String())
	}

	cond, err := q.wheres.Build(&args)
	if err != nil {
		return "", nil, err
	}
	if cond != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(cond)
	}

	if len(q.groups) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(q.groups, ", "))
	}

	having, err := q.havings.Build(&args)
	if err != nil {
		return "", nil, err
	}
	if having != "" {
		sb.WriteString(" HAVING ")
		sb.WriteString(having)
	}

	if len(q.orders) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(lo.Map(q.orders, func(o qb.Order, _ int) string { return o.String() }), ", "))
	}

	if q.limit > -1 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(q.limit))
	}

	if q.offset > -1 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(q.offset))
	}

	for _, u := range q.unions {
		out, a, err := u.query.ToSQL()
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(" ")
		sb.WriteString(string(u.kind))
		sb.WriteString(" ")
		sb.WriteString(out)
		args.Add(a...)
	}

	q.bindings = args

	return sb.String(), args.Values(), nil
}
