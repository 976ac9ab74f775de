// Package engine computes a nightly rate from a campground's pricing rules.
//
// The three entry points are pure functions over caller-owned data: Validate
// gates rule drafts at authoring time, Match filters a rule set down to the
// rules applicable to one date and site class, and Resolve folds the matched
// rules into a single rate. Nothing here touches storage or shared state, so
// every function is safe to call concurrently.
package engine

import (
	"strings"
	"unicode/utf8"

	ruledomain "github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/domain"
)

const (
	maxNameLength = 100
	maxPriority   = 999
)

// Validate runs the structural checks on a rule draft and returns the first
// failure as a *ValidationError, mirroring the authoring UI's
// single-error-at-a-time behavior. Check order is fixed: name, priority,
// adjustment, cap non-negativity, cap ordering, date ordering. The rule's ID
// is not examined; drafts are validated before an ID is assigned.
func Validate(r ruledomain.PricingRule) error {
	if strings.TrimSpace(r.Name) == "" || utf8.RuneCountInString(r.Name) > maxNameLength {
		return &ValidationError{Field: "name", Err: ErrInvalidName}
	}
	if r.Priority < 0 || r.Priority > maxPriority {
		return &ValidationError{Field: "priority", Err: ErrInvalidPriority}
	}
	if r.AdjustmentValue == 0 {
		return &ValidationError{Field: "adjustment_value", Err: ErrZeroAdjustment}
	}
	if r.MinRateCapCents != nil && *r.MinRateCapCents < 0 {
		return &ValidationError{Field: "min_rate_cap_cents", Err: ErrInvalidCap}
	}
	if r.MaxRateCapCents != nil && *r.MaxRateCapCents < 0 {
		return &ValidationError{Field: "max_rate_cap_cents", Err: ErrInvalidCap}
	}
	if r.MinRateCapCents != nil && r.MaxRateCapCents != nil && *r.MaxRateCapCents < *r.MinRateCapCents {
		return &ValidationError{Field: "max_rate_cap_cents", Err: ErrCapOrder}
	}
	if r.StartDate != nil && r.EndDate != nil && dateOnly(*r.EndDate).Before(dateOnly(*r.StartDate)) {
		return &ValidationError{Field: "end_date", Err: ErrDateOrder}
	}
	return nil
}
