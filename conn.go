package querykit

import (
	"context"
	"log"
	"os"

	"github.com/maxshaw/querykit/adapter"
	"github.com/pkg/errors"
)

type Row = adapter.Row

// Conn renders builders and runs them through an adapter. A Conn shares the
// adapter's transaction state and is not safe for concurrent use.
type Conn struct {
	adapter adapter.Adapter
	hooks   Hooks
	logger  *log.Logger
}

type Option func(*Conn)

// WithLogger logs every statement and its bindings before execution.
func WithLogger(l *log.Logger) Option {
	return func(c *Conn) {
		c.logger = l
	}
}

func NewConn(a adapter.Adapter, opts ...Option) *Conn {
	c := &Conn{adapter: a}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect validates cfg and opens the adapter it names.
func Connect(cfg Config, opts ...Option) (*Conn, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a, err := adapter.Open(cfg.Adapter, cfg.DSN)
	if err != nil {
		return nil, err
	}

	c := NewConn(a, opts...)
	if cfg.LogSQL && c.logger == nil {
		c.logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return c, nil
}

func (c *Conn) Adapter() adapter.Adapter {
	return c.adapter
}

// Use registers a named hook applied to every statement this Conn executes.
func (c *Conn) Use(name string, fn Hook) error {
	return c.hooks.Register(name, fn)
}

func (c *Conn) Query(table string) *SelectQuery {
	return NewSelect(table)
}

func (c *Conn) From(table string) *SelectQuery {
	return NewSelect(table)
}

func (c *Conn) Table(table string) *SelectQuery {
	return NewSelect(table)
}

func (c *Conn) Insert(table string) *InsertQuery {
	return NewInsert(table)
}

func (c *Conn) Update(table string) *UpdateQuery {
	return NewUpdate(table)
}

func (c *Conn) Delete(table string) *DeleteQuery {
	return NewDelete(table)
}

func (c *Conn) exec(ctx context.Context, r Renderer) ([]Row, error) {
	sq, args, err := r.ToSQL()
	if err != nil {
		return nil, err
	}

	if sq, args, err = c.hooks.Apply(sq, args); err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Printf("[SQL] %s\n", sq)
		c.logger.Printf("[SQL] %+v\n", args)
	}

	return c.adapter.Execute(ctx, sq, args)
}

func (c *Conn) Get(ctx context.Context, q Renderer) ([]Row, error) {
	return c.exec(ctx, q)
}

// First limits q to one row and returns it. ok is false when nothing matched.
func (c *Conn) First(ctx context.Context, q *SelectQuery) (row Row, ok bool, err error) {
	rows, err := c.exec(ctx, q.Limit(1))
	if err != nil || len(rows) == 0 {
		return Row{}, false, err
	}
	return rows[0], true, nil
}

// ExecuteInsert runs q and returns the generated identifier, as read by the
// adapter on the session that ran the insert.
func (c *Conn) ExecuteInsert(ctx context.Context, q Renderer) (int64, error) {
	if _, err := c.exec(ctx, q); err != nil {
		return 0, err
	}
	return c.adapter.LastInsertID(ctx)
}

// ExecuteUpdate runs q and returns the number of affected rows.
func (c *Conn) ExecuteUpdate(ctx context.Context, q Renderer) (int64, error) {
	if _, err := c.exec(ctx, q); err != nil {
		return 0, err
	}
	return c.adapter.AffectedRows()
}

func (c *Conn) ExecuteDelete(ctx context.Context, q Renderer) (int64, error) {
	return c.ExecuteUpdate(ctx, q)
}

// ExecuteScalar returns the first column of the first row, nil if there is none.
func (c *Conn) ExecuteScalar(ctx context.Context, q *SelectQuery) (any, error) {
	row, ok, err := c.First(ctx, q)
	if err != nil || !ok {
		return nil, err
	}
	return row.Scalar(), nil
}

func (c *Conn) Raw(ctx context.Context, sql string, args ...any) ([]Row, error) {
	return c.exec(ctx, Raw(sql, args...))
}

// Transaction runs fn between Begin and Commit. If fn returns an error or
// panics the transaction is rolled back first; the error is returned as is
// and the panic is re-raised.
func (c *Conn) Transaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if err = c.adapter.Begin(ctx); err != nil {
		return errors.Wrap(err, "querykit: begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = c.adapter.Rollback()
			panic(p)
		}
	}()

	if err = fn(ctx); err != nil {
		if rbErr := c.adapter.Rollback(); rbErr != nil {
			return errors.WithMessagef(err, "rollback failed: %v", rbErr)
		}
		return err
	}

	return c.adapter.Commit()
}

func (c *Conn) Close() error {
	return c.adapter.Close()
}
