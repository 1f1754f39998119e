package querykit

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
)

// Mapper turns a result row into a T.
type Mapper[T any] func(Row) (T, error)

// MapFunc builds a Mapper from a constructor taking the row as a map.
func MapFunc[T any](fn func(map[string]any) T) Mapper[T] {
	return func(r Row) (T, error) {
		return fn(r.Map()), nil
	}
}

// Setters maps column names to field setters. Columns without a setter are
// ignored.
type Setters[T any] map[string]func(*T, any) error

func (s Setters[T]) Mapper() Mapper[T] {
	return func(r Row) (T, error) {
		var t T
		for i, col := range r.Columns {
			set, ok := s[col]
			if !ok {
				continue
			}
			if err := set(&t, r.Values[i]); err != nil {
				return t, errors.Wrapf(err, "querykit: map column %s", col)
			}
		}
		return t, nil
	}
}

// Repository is a table-bound set of common queries returning T.
type Repository[T any] struct {
	conn   *Conn
	table  string
	mapper Mapper[T]
}

func NewRepository[T any](conn *Conn, table string, mapper Mapper[T]) *Repository[T] {
	return &Repository[T]{conn: conn, table: table, mapper: mapper}
}

func (r *Repository[T]) Query() *SelectQuery {
	return NewSelect(r.table)
}

func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	return r.Execute(ctx, r.Query())
}

func (r *Repository[T]) Find(ctx context.Context, id any) (T, bool, error) {
	return r.ExecuteFirst(ctx, r.Query().Where("id", id))
}

func (r *Repository[T]) FindBy(ctx context.Context, col string, val any) (T, bool, error) {
	return r.ExecuteFirst(ctx, r.Query().Where(col, val))
}

func (r *Repository[T]) Where(ctx context.Context, col, op string, val any) ([]T, error) {
	return r.Execute(ctx, r.Query().WhereOp(col, op, val))
}

func (r *Repository[T]) WhereIn(ctx context.Context, col string, vals ...any) ([]T, error) {
	return r.Execute(ctx, r.Query().WhereIn(col, vals...))
}

func (r *Repository[T]) WhereNotIn(ctx context.Context, col string, vals ...any) ([]T, error) {
	return r.Execute(ctx, r.Query().WhereNotIn(col, vals...))
}

func (r *Repository[T]) First(ctx context.Context) (T, bool, error) {
	return r.ExecuteFirst(ctx, r.Query())
}

func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	v, err := r.conn.ExecuteScalar(ctx, r.Query().Count())
	if err != nil {
		return 0, err
	}
	return toInt64(v)
}

// Exists reports whether the table has any row, or the row with id if given.
func (r *Repository[T]) Exists(ctx context.Context, id ...any) (bool, error) {
	q := r.Query().Count()
	if len(id) > 0 {
		q.Where("id", id[0])
	}
	v, err := r.conn.ExecuteScalar(ctx, q)
	if err != nil {
		return false, err
	}
	n, err := toInt64(v)
	return n > 0, err
}

func (r *Repository[T]) Insert(ctx context.Context, attrs H) (int64, error) {
	return r.conn.ExecuteInsert(ctx, NewInsert(r.table).Values(attrs))
}

func (r *Repository[T]) Update(ctx context.Context, id any, attrs H) (int64, error) {
	return r.conn.ExecuteUpdate(ctx, NewUpdate(r.table).SetMap(attrs).Where("id", id))
}

func (r *Repository[T]) Delete(ctx context.Context, id any) (int64, error) {
	return r.conn.ExecuteDelete(ctx, NewDelete(r.table).Where("id", id))
}

func (r *Repository[T]) DeleteWhere(ctx context.Context, conds H) (int64, error) {
	return r.conn.ExecuteDelete(ctx, NewDelete(r.table).WhereMap(conds))
}

func (r *Repository[T]) Execute(ctx context.Context, q Renderer) ([]T, error) {
	rows, err := r.conn.Get(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		t, err := r.mapper(row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *Repository[T]) ExecuteFirst(ctx context.Context, q *SelectQuery) (T, bool, error) {
	var zero T
	row, ok, err := r.conn.First(ctx, q)
	if err != nil || !ok {
		return zero, false, err
	}
	t, err := r.mapper(row)
	if err != nil {
		return zero, false, err
	}
	return t, true, nil
}

func (r *Repository[T]) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.conn.Transaction(ctx, fn)
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	}
	return 0, errors.Errorf("querykit: unexpected count type %T", v)
}
