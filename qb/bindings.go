package qb

// Bindings is the ordered list of values bound to the ? placeholders of one
// rendered statement. Values are only ever appended.
type Bindings []any

func (b *Bindings) Add(v ...any) {
	*b = append(*b, v...)
}

func (b Bindings) Len() int {
	return len(b)
}

// Values returns a copy safe to hand to callers.
func (b Bindings) Values() []any {
	out := make([]any, len(b))
	copy(out, b)
	return out
}
