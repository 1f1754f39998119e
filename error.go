package querykit

import "github.com/maxshaw/querykit/qb"

type ConfigError = qb.ConfigError

var (
	ErrNoTable         = qb.ErrNoTable
	ErrNoValues        = qb.ErrNoValues
	ErrNoAssignments   = qb.ErrNoAssignments
	ErrNoArms          = qb.ErrNoArms
	ErrThenWithoutWhen = qb.ErrThenWithoutWhen
	ErrNoSubject       = qb.ErrNoSubject
	ErrNilValue        = qb.ErrNilValue
	ErrDuplicateHook   = qb.ErrDuplicateHook

	ErrAdapter = &ConfigError{Field: "adapter", Msg: "unsupported adapter"}
	ErrDSN     = &ConfigError{Field: "dsn", Msg: "no dsn specified"}
)
