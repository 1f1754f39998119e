package qb

import "strings"

type arm struct {
	col, op, raw string
	val, then    any
}

// Case builds a CASE expression. With a subject column it is the simple form
// (CASE col WHEN ? THEN ?), otherwise the searched form (CASE WHEN col op ? THEN ?).
//
// Mutators never fail; the first misuse is kept and returned by ToSQL.
type Case struct {
	subject string
	arms    []arm

	elseVal any
	hasElse bool

	alias string
	err   error
}

func NewCase(subject ...string) *Case {
	c := &Case{}
	if len(subject) > 0 {
		c.subject = subject[0]
	}
	return c
}

// WhenValue adds a simple-form arm comparing the subject column to v.
func (c *Case) WhenValue(v any) *Case {
	if c.subject == "" && c.err == nil {
		c.err = ErrNoSubject
	}
	c.arms = append(c.arms, arm{val: v})
	return c
}

func (c *Case) When(col string, v any) *Case {
	return c.WhenOp(col, "=", v)
}

func (c *Case) WhenOp(col, op string, v any) *Case {
	c.arms = append(c.arms, arm{col: col, op: op, val: v})
	return c
}

func (c *Case) WhenRaw(cond string) *Case {
	c.arms = append(c.arms, arm{raw: cond})
	return c
}

// Then sets the result of the most recent arm.
func (c *Case) Then(v any) *Case {
	if len(c.arms) == 0 {
		if c.err == nil {
			c.err = ErrThenWithoutWhen
		}
		return c
	}
	c.arms[len(c.arms)-1].then = v
	return c
}

func (c *Case) Else(v any) *Case {
	c.elseVal, c.hasElse = v, true
	return c
}

func (c *Case) As(alias string) *Case {
	c.alias = alias
	return c
}

func (c *Case) Err() error {
	return c.err
}

func (c *Case) ToSQL() (string, []any, error) {
	if c.err != nil {
		return "", nil, c.err
	}
	if len(c.arms) == 0 {
		return "", nil, ErrNoArms
	}

	var (
		sb   strings.Builder
		args Bindings
	)

	sb.WriteString("CASE")
	if c.subject != "" {
		sb.WriteString(" ")
		sb.WriteString(c.subject)
	}

	for _, a := range c.arms {
		switch {
		case a.raw != "":
			sb.WriteString(" WHEN ")
			sb.WriteString(a.raw)
			sb.WriteString(" THEN ?")
			args.Add(a.then)
		case c.subject != "":
			sb.WriteString(" WHEN ? THEN ?")
			args.Add(a.val, a.then)
		default:
			sb.WriteString(" WHEN ")
			sb.WriteString(a.col)
			sb.WriteString(" ")
			sb.WriteString(a.op)
			sb.WriteString(" ? THEN ?")
			args.Add(a.val, a.then)
		}
	}

	if c.hasElse {
		sb.WriteString(" ELSE ?")
		args.Add(c.elseVal)
	}

	sb.WriteString(" END")
	if c.alias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(c.alias)
	}

	return sb.String(), args, nil
}
