package qb

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// JSON binds a Go value as its JSON encoding and scans it back.
type JSON[T any] struct {
	Val   T
	Valid bool
}

func NewJSON[T any](v T) JSON[T] {
	return JSON[T]{Val: v, Valid: true}
}

// Value implements the driver Valuer interface.
func (j JSON[T]) Value() (driver.Value, error) {
	if !j.Valid {
		return nil, nil
	}
	b, err := json.Marshal(j.Val)
	if err != nil {
		return nil, errors.Wrap(err, "qb: encode JSON binding")
	}
	return string(b), nil
}

// Scan implements the Scanner interface.
func (j *JSON[T]) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		var zero T
		j.Val, j.Valid = zero, false
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Errorf("qb: cannot scan %T into JSON", value)
	}

	var val T
	if err := json.Unmarshal(raw, &val); err != nil {
		return errors.Wrap(err, "qb: decode JSON column")
	}
	j.Val, j.Valid = val, true
	return nil
}
