package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPriority = errors.New("invalid_priority")
	ErrZeroAdjustment  = errors.New("zero_adjustment")
	ErrInvalidCap      = errors.New("invalid_cap")
	ErrCapOrder        = errors.New("cap_order_violation")
	ErrDateOrder       = errors.New("date_order_violation")
)

// ValidationError reports the first failing check for a rule draft. Field is
// the wire name of the offending field so callers can render field-level
// messages.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
}

func (e *ValidationError) Unwrap() error { return e.Err }

// CapConflictError is returned when matched rules produce an unsatisfiable
// cap intersection (floor above ceiling). The engine never picks a side;
// the caller decides how to recover.
type CapConflictError struct {
	MinCapCents int64
	MaxCapCents int64
}

func (e *CapConflictError) Error() string {
	return fmt.Sprintf("cap_conflict: min cap %d exceeds max cap %d", e.MinCapCents, e.MaxCapCents)
}
