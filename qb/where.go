package qb

import "reflect"

func Eq(col string, val any) Expr {
	return BasicExpr{Col: col, Op: "=", Val: val}
}

func Neq(col string, val any) Expr {
	return BasicExpr{Col: col, Op: "<>", Val: val}
}

func Gt(col string, val any) Expr {
	return BasicExpr{Col: col, Op: ">", Val: val}
}

func Lt(col string, val any) Expr {
	return BasicExpr{Col: col, Op: "<", Val: val}
}

func Gte(col string, val any) Expr {
	return BasicExpr{Col: col, Op: ">=", Val: val}
}

func Lte(col string, val any) Expr {
	return BasicExpr{Col: col, Op: "<=", Val: val}
}

func Op(col, op string, val any) Expr {
	return BasicExpr{Col: col, Op: op, Val: val}
}

func Like(col string, val string) Expr {
	return BasicExpr{Col: col, Op: "LIKE", Val: "%" + val + "%"}
}

func RLike(col string, val string) Expr {
	return BasicExpr{Col: col, Op: "LIKE", Val: val + "%"}
}

func LLike(col string, val string) Expr {
	return BasicExpr{Col: col, Op: "LIKE", Val: "%" + val}
}

func Between(col string, a, b any) Expr {
	return BetweenExpr{Col: col, Min: a, Max: b}
}

func Raw(s string, args ...any) Expr {
	return RawExpr{SQL: s, Args: args}
}

func Null(col string) Expr {
	return NullExpr{Col: col}
}

func NotNull(col string) Expr {
	return NullExpr{Col: col, Not: true}
}

// In accepts either the values themselves or a single slice of values.
func In(col string, args ...any) Expr {
	return InExpr{Col: col, Vals: flatten(args)}
}

func NotIn(col string, args ...any) Expr {
	return InExpr{Col: col, Vals: flatten(args), Not: true}
}

func Exists(sub Renderer) Expr {
	return ExistsExpr{Sub: sub}
}

func NotExists(sub Renderer) Expr {
	return ExistsExpr{Sub: sub, Not: true}
}

// And groups exprs joined with AND.
func And(a ...Expr) Expr {
	var c Conds
	c.Add(AND, a...)
	return GroupExpr{Conds: c}
}

// Or groups exprs joined with OR.
func Or(a ...Expr) Expr {
	var c Conds
	c.Add(OR, a...)
	return GroupExpr{Conds: c}
}

// Map expands h into one equality per key, in key order.
func Map(h H) []Expr {
	out := make([]Expr, 0, len(h))
	for _, k := range h.Keys() {
		out = append(out, Eq(k, h[k]))
	}
	return out
}

func flatten(args []any) []any {
	if len(args) != 1 || args[0] == nil {
		return args
	}
	rv := reflect.ValueOf(args[0])
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
		return args
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
