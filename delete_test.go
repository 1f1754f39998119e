package querykit

import (
	"testing"

	"github.com/maxshaw/querykit/qb"
	"github.com/stretchr/testify/assert"
)

func TestDeleteRender(t *testing.T) {
	sql, args := render(t, NewDelete("users").Where("id", 1))
	assert.Equal(t, "DELETE FROM users WHERE id = ?", sql)
	assert.Equal(t, []any{1}, args)
}

func TestDeleteWithoutWhereDeletesEverything(t *testing.T) {
	sql, args := render(t, NewDelete("").From("users"))
	assert.Equal(t, "DELETE FROM users", sql)
	assert.Empty(t, args)
}

func TestDeleteWhereFamily(t *testing.T) {
	q := NewDelete("sessions").
		WhereOp("expires_at", "<", "2024-01-01").
		OrWhere("revoked", true).
		WhereMap(H{"user_id": 7}).
		WhereExpr(qb.Null("kept_at")).
		OrWhereExpr(qb.Between("id", 10, 20))

	sql, args := render(t, q)
	assert.Equal(t, "DELETE FROM sessions WHERE expires_at < ? OR revoked = ? AND user_id = ? AND kept_at IS NULL OR id BETWEEN ? AND ?", sql)
	assert.Equal(t, []any{"2024-01-01", true, 7, 10, 20}, args)
	assert.Equal(t, args, q.Bindings())
}

func TestDeleteErrors(t *testing.T) {
	_, _, err := NewDelete("").Where("id", 1).ToSQL()
	assert.ErrorIs(t, err, ErrNoTable)

	_, _, err = NewDelete("t").Where("id", nil).ToSQL()
	assert.ErrorIs(t, err, ErrNilValue)
}

func TestDeleteEmptyGroupOmitsWhere(t *testing.T) {
	sql, _ := render(t, NewDelete("t").WhereExpr(qb.And()))
	assert.Equal(t, "DELETE FROM t", sql)

	sql, _ = render(t, NewDelete("t").WhereExpr(qb.Or()).Where("id", 2))
	assert.Equal(t, "DELETE FROM t WHERE id = ?", sql)
}
