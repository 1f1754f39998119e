package querykit

import (
	"github.com/maxshaw/querykit/qb"
	"github.com/samber/lo"
)

// Hook post-processes a rendered statement before it is executed.
type Hook func(sql string, args []any) (string, []any, error)

type namedHook struct {
	name string
	fn   Hook
}

// Hooks is an ordered registry of named hooks.
type Hooks struct {
	list []namedHook
}

func (h *Hooks) Register(name string, fn Hook) error {
	if lo.ContainsBy(h.list, func(n namedHook) bool { return n.name == name }) {
		return &qb.ConfigError{Field: ErrDuplicateHook.Field, Msg: ErrDuplicateHook.Msg + ": " + name}
	}
	h.list = append(h.list, namedHook{name: name, fn: fn})
	return nil
}

func (h *Hooks) Names() []string {
	return lo.Map(h.list, func(n namedHook, _ int) string { return n.name })
}

// Apply runs every hook in registration order.
func (h *Hooks) Apply(sql string, args []any) (string, []any, error) {
	var err error
	for _, n := range h.list {
		if sql, args, err = n.fn(sql, args); err != nil {
			return "", nil, err
		}
	}
	return sql, args, nil
}

type extended struct {
	base  Renderer
	hooks Hooks
}

// Extend wraps r so that its output passes through hooks.
func Extend(r Renderer, hooks ...Hook) Renderer {
	e := &extended{base: r}
	for _, fn := range hooks {
		e.hooks.list = append(e.hooks.list, namedHook{fn: fn})
	}
	return e
}

func (e *extended) ToSQL() (string, []any, error) {
	sql, args, err := e.base.ToSQL()
	if err != nil {
		return "", nil, err
	}
	return e.hooks.Apply(sql, args)
}
