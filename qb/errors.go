package qb

// ConfigError reports a builder that cannot be rendered as configured.
// Two ConfigErrors match under errors.Is when their Field is equal.
type ConfigError struct {
	Field, Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	return ok && t.Field == e.Field
}

var (
	ErrNoTable         = &ConfigError{Field: "table", Msg: "no table specified"}
	ErrNoValues        = &ConfigError{Field: "values", Msg: "no values specified"}
	ErrNoAssignments   = &ConfigError{Field: "assignments", Msg: "no values to update"}
	ErrNoArms          = &ConfigError{Field: "when", Msg: "CASE expression must have at least one WHEN clause"}
	ErrThenWithoutWhen = &ConfigError{Field: "then", Msg: "no WHEN clause to add THEN to"}
	ErrNoSubject       = &ConfigError{Field: "subject", Msg: "simple CASE arm needs a subject column"}
	ErrNilValue        = &ConfigError{Field: "value", Msg: "nil value in comparison, use a NULL check instead"}
	ErrDuplicateHook   = &ConfigError{Field: "hook", Msg: "hook already registered"}
)

func configErrorf(base *ConfigError, detail string) *ConfigError {
	return &ConfigError{Field: base.Field, Msg: base.Msg + ": " + detail}
}
