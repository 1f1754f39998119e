package qb

import (
	"strings"

	"github.com/samber/lo"
)

// Renderer is anything that renders to SQL text and its bindings.
type Renderer interface {
	ToSQL() (string, []any, error)
}

// Expr is one condition of a WHERE or HAVING list.
type Expr interface {
	Build() (string, []any, error)
}

// Bool is the keyword that precedes a condition in a list.
type Bool string

const (
	AND Bool = "AND"
	OR  Bool = "OR"
)

// Cond pairs a condition with the keyword rendered before it. The keyword of
// the first Cond in a list is never rendered.
type Cond struct {
	Bool Bool
	Expr Expr
}

type Conds []Cond

func (c *Conds) Add(b Bool, e ...Expr) {
	for _, x := range e {
		*c = append(*c, Cond{Bool: b, Expr: x})
	}
}

// Build renders the list and appends its bindings to args. Conditions that
// render to nothing, such as an empty group, are dropped with their keyword,
// so an empty result means there is no condition to write.
func (c Conds) Build(args *Bindings) (string, error) {
	out, _, err := c.build(args)
	return out, err
}

func (c Conds) build(args *Bindings) (string, int, error) {
	var (
		sb strings.Builder
		n  int
	)
	for _, cond := range c {
		out, a, err := cond.Expr.Build()
		if err != nil {
			return "", 0, err
		}
		if out == "" {
			continue
		}
		if n > 0 {
			sb.WriteString(" ")
			sb.WriteString(string(cond.Bool))
			sb.WriteString(" ")
		}
		sb.WriteString(out)
		args.Add(a...)
		n++
	}
	return sb.String(), n, nil
}

type BasicExpr struct {
	Col, Op string
	Val     any
}

func (e BasicExpr) Build() (string, []any, error) {
	if e.Val == nil {
		return "", nil, configErrorf(ErrNilValue, e.Col)
	}
	return e.Col + " " + e.Op + " ?", []any{e.Val}, nil
}

type InExpr struct {
	Col  string
	Vals []any
	Not  bool
}

func (e InExpr) Build() (string, []any, error) {
	op := " IN ("
	if e.Not {
		op = " NOT IN ("
	}
	return e.Col + op + Placeholders(len(e.Vals)) + ")", e.Vals, nil
}

type NullExpr struct {
	Col string
	Not bool
}

func (e NullExpr) Build() (string, []any, error) {
	if e.Not {
		return e.Col + " IS NOT NULL", nil, nil
	}
	return e.Col + " IS NULL", nil, nil
}

type BetweenExpr struct {
	Col      string
	Min, Max any
}

func (e BetweenExpr) Build() (string, []any, error) {
	return e.Col + " BETWEEN ? AND ?", []any{e.Min, e.Max}, nil
}

// RawExpr is emitted verbatim. The number of ? in SQL must match Args; this is
// not checked.
type RawExpr struct {
	SQL  string
	Args []any
}

func (e RawExpr) Build() (string, []any, error) {
	return e.SQL, e.Args, nil
}

type ExistsExpr struct {
	Sub Renderer
	Not bool
}

func (e ExistsExpr) Build() (string, []any, error) {
	sq, args, err := e.Sub.ToSQL()
	if err != nil {
		return "", nil, err
	}
	if e.Not {
		return "NOT EXISTS (" + sq + ")", args, nil
	}
	return "EXISTS (" + sq + ")", args, nil
}

// GroupExpr renders its conditions inside parentheses. An empty group renders
// as an empty string and is skipped by the enclosing list.
type GroupExpr struct {
	Conds Conds
}

func (e GroupExpr) Build() (string, []any, error) {
	var args Bindings
	out, n, err := e.Conds.build(&args)
	if err != nil {
		return "", nil, err
	}
	if n > 1 {
		out = "(" + out + ")"
	}
	return out, args, nil
}

// Placeholders returns n comma-separated ? markers.
func Placeholders(n int) string {
	return strings.Join(lo.RepeatBy(n, func(int) string { return "?" }), ", ")
}
