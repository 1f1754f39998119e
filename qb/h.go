package qb

import (
	"sort"

	"github.com/samber/lo"
)

// H maps column names to values. Wherever an H is expanded into SQL its keys
// are taken in sorted order, so the same H always renders the same text.
type H map[string]any

func (h H) Keys() []string {
	keys := lo.Keys(h)
	sort.Strings(keys)
	return keys
}
