package qb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSub struct {
	sql  string
	args []any
	err  error
}

func (f fakeSub) ToSQL() (string, []any, error) {
	return f.sql, f.args, f.err
}

func TestExprBuild(t *testing.T) {
	cases := []struct {
		name string
		expr Expr
		sql  string
		args []any
	}{
		{"eq", Eq("name", "Alice"), "name = ?", []any{"Alice"}},
		{"neq", Neq("status", "banned"), "status <> ?", []any{"banned"}},
		{"op", Op("age", ">", 18), "age > ?", []any{18}},
		{"in", In("id", 1, 2, 3), "id IN (?, ?, ?)", []any{1, 2, 3}},
		{"in slice", In("id", []int{4, 5}), "id IN (?, ?)", []any{4, 5}},
		{"not in", NotIn("status", "banned", "suspended"), "status NOT IN (?, ?)", []any{"banned", "suspended"}},
		{"null", Null("deleted_at"), "deleted_at IS NULL", nil},
		{"not null", NotNull("email"), "email IS NOT NULL", nil},
		{"between", Between("price", 10, 100), "price BETWEEN ? AND ?", []any{10, 100}},
		{"raw", Raw("YEAR(created_at) = ?", 2024), "YEAR(created_at) = ?", []any{2024}},
		{"like", Like("name", "li"), "name LIKE ?", []any{"%li%"}},
		{"rlike", RLike("name", "Al"), "name LIKE ?", []any{"Al%"}},
		{"llike", LLike("name", "ce"), "name LIKE ?", []any{"%ce"}},
		{"exists", Exists(fakeSub{sql: "SELECT 1 FROM orders WHERE total > ?", args: []any{5}}), "EXISTS (SELECT 1 FROM orders WHERE total > ?)", []any{5}},
		{"not exists", NotExists(fakeSub{sql: "SELECT 1"}), "NOT EXISTS (SELECT 1)", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sql, args, err := tc.expr.Build()
			require.NoError(t, err)
			assert.Equal(t, tc.sql, sql)
			assert.Equal(t, tc.args, args)
		})
	}
}

func TestNilValueIsRejected(t *testing.T) {
	_, _, err := Eq("deleted_at", nil).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNilValue)
}

func TestExistsPropagatesSubqueryError(t *testing.T) {
	_, _, err := Exists(fakeSub{err: ErrNoTable}).Build()
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestCondsFirstMarkerIgnored(t *testing.T) {
	var c Conds
	c.Add(OR, Gt("age", 30))
	c.Add(AND, Eq("country", "USA"))
	c.Add(OR, Eq("status", "premium"))

	var args Bindings
	sql, err := c.Build(&args)
	require.NoError(t, err)
	assert.Equal(t, "age > ? AND country = ? OR status = ?", sql)
	assert.Equal(t, Bindings{30, "USA", "premium"}, args)
}

func TestCondsAppendToExistingBindings(t *testing.T) {
	args := Bindings{"case"}
	var c Conds
	c.Add(AND, In("id", 1, 2), Null("deleted_at"), Between("age", 18, 65))

	sql, err := c.Build(&args)
	require.NoError(t, err)
	assert.Equal(t, "id IN (?, ?) AND deleted_at IS NULL AND age BETWEEN ? AND ?", sql)
	assert.Equal(t, Bindings{"case", 1, 2, 18, 65}, args)
}

func TestGroups(t *testing.T) {
	var c Conds
	c.Add(AND, Eq("active", true), Or(Eq("role", "admin"), Gt("karma", 100)))

	var args Bindings
	sql, err := c.Build(&args)
	require.NoError(t, err)
	assert.Equal(t, "active = ? AND (role = ? OR karma > ?)", sql)
	assert.Equal(t, Bindings{true, "admin", 100}, args)

	sql, _, err = And(Eq("a", 1)).Build()
	require.NoError(t, err)
	assert.Equal(t, "a = ?", sql)
}

func TestEmptyGroupsAreSkipped(t *testing.T) {
	sql, args, err := And().Build()
	require.NoError(t, err)
	assert.Empty(t, sql)
	assert.Empty(t, args)

	var c Conds
	c.Add(AND, Eq("a", 1), Or())
	c.Add(OR, And(Or(), Eq("b", 2)))

	var got Bindings
	sql, err = c.Build(&got)
	require.NoError(t, err)
	assert.Equal(t, "a = ? OR b = ?", sql)
	assert.Equal(t, Bindings{1, 2}, got)

	var lead Conds
	lead.Add(AND, Or(), Eq("a", 1))
	sql, err = lead.Build(&got)
	require.NoError(t, err)
	assert.Equal(t, "a = ?", sql)

	var empty Conds
	empty.Add(AND, And(), Or())
	sql, err = empty.Build(&got)
	require.NoError(t, err)
	assert.Empty(t, sql)
}

func TestMapExpandsInKeyOrder(t *testing.T) {
	exprs := Map(H{"name": "Alice", "age": 28})
	require.Len(t, exprs, 2)

	var c Conds
	c.Add(AND, exprs...)
	var args Bindings
	sql, err := c.Build(&args)
	require.NoError(t, err)
	assert.Equal(t, "age = ? AND name = ?", sql)
	assert.Equal(t, Bindings{28, "Alice"}, args)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", Placeholders(0))
	assert.Equal(t, "?", Placeholders(1))
	assert.Equal(t, "?, ?, ?", Placeholders(3))
}

func TestJoinAndOrderStrings(t *testing.T) {
	assert.Equal(t, "INNER JOIN users ON orders.user_id = users.id",
		Join{Kind: InnerJoin, Table: "users", Left: "orders.user_id", Op: "=", Right: "users.id"}.String())
	assert.Equal(t, "CROSS JOIN colors", Join{Kind: CrossJoin, Table: "colors", Left: "ignored"}.String())
	assert.Equal(t, "name DESC", Order{Col: "name", Dir: Descend}.String())
	assert.Equal(t, "FIELD(id, 3, 1)", Order{Raw: "FIELD(id, 3, 1)"}.String())
	assert.Equal(t, Descend, ParseSortBy("desc"))
	assert.Equal(t, Ascend, ParseSortBy("whatever"))
}

func TestConfigErrorIs(t *testing.T) {
	err := configErrorf(ErrNilValue, "name")
	assert.ErrorIs(t, err, ErrNilValue)
	assert.NotErrorIs(t, err, ErrNoTable)
	assert.Equal(t, "nil value in comparison, use a NULL check instead: name", err.Error())
}
