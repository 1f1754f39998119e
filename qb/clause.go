package qb

import "strings"

type JoinKind string

const (
	InnerJoin JoinKind = "INNER"
	LeftJoin  JoinKind = "LEFT"
	RightJoin JoinKind = "RIGHT"
	CrossJoin JoinKind = "CROSS"
)

type Join struct {
	Kind            JoinKind
	Table           string
	Left, Op, Right string
}

func (j Join) String() string {
	if j.Kind == CrossJoin {
		return "CROSS JOIN " + j.Table
	}
	return string(j.Kind) + " JOIN " + j.Table + " ON " + j.Left + " " + j.Op + " " + j.Right
}

type SortBy string

const (
	Ascend  SortBy = "ASC"
	Descend SortBy = "DESC"
)

// ParseSortBy accepts asc/desc in any case and defaults to Ascend.
func ParseSortBy(s string) SortBy {
	if strings.EqualFold(s, string(Descend)) {
		return Descend
	}
	return Ascend
}

// Order is one ORDER BY item. A non-empty Raw is rendered as is.
type Order struct {
	Col string
	Dir SortBy
	Raw string
}

func (o Order) String() string {
	if o.Raw != "" {
		return o.Raw
	}
	return o.Col + " " + string(o.Dir)
}

type UnionKind string

const (
	Union    UnionKind = "UNION"
	UnionAll UnionKind = "UNION ALL"
)
