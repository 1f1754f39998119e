// Package querykit builds parameterized SQL with chained calls and runs it
// through a dialect adapter.
//
// Every builder renders to SQL text using ? placeholders and a parallel list of
// bindings in placeholder order:
//
//	sq, args, err := querykit.NewSelect("users").
//		Where("country", "USA").
//		WhereOp("age", ">", 18).
//		OrderByDesc("created_at").
//		Page(2, 20).
//		ToSQL()
//
// Builders are mutated in place and are not safe for concurrent use. Rendering
// does not change them and may be repeated.
package querykit

import "github.com/maxshaw/querykit/qb"

// Renderer is implemented by every builder and by RawQuery.
type Renderer = qb.Renderer

// H maps columns to values; keys render in sorted order.
type H = qb.H

// RawQuery passes SQL and bindings through untouched.
type RawQuery struct {
	SQL  string
	Args []any
}

func Raw(sql string, args ...any) RawQuery {
	return RawQuery{SQL: sql, Args: args}
}

func (r RawQuery) ToSQL() (string, []any, error) {
	return r.SQL, r.Args, nil
}
