package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	ruledomain "github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() ruledomain.PricingRule {
	return ruledomain.PricingRule{
		CampgroundID:    snowflake.ID(42),
		Name:            "Summer peak",
		Kind:            ruledomain.Season,
		Priority:        10,
		StackMode:       ruledomain.Additive,
		AdjustmentType:  ruledomain.Percent,
		AdjustmentValue: 0.15,
		Active:          true,
	}
}

func i64(v int64) *int64 { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestValidateAcceptsValidDraft(t *testing.T) {
	assert.NoError(t, Validate(validDraft()))
}

func TestValidateChecks(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ruledomain.PricingRule)
		wantField string
		wantErr   error
	}{
		{
			name:      "empty name",
			mutate:    func(r *ruledomain.PricingRule) { r.Name = "" },
			wantField: "name",
			wantErr:   ErrInvalidName,
		},
		{
			name:      "whitespace name",
			mutate:    func(r *ruledomain.PricingRule) { r.Name = "   " },
			wantField: "name",
			wantErr:   ErrInvalidName,
		},
		{
			name:      "name over 100 chars",
			mutate:    func(r *ruledomain.PricingRule) { r.Name = strings.Repeat("x", 101) },
			wantField: "name",
			wantErr:   ErrInvalidName,
		},
		{
			name:      "negative priority",
			mutate:    func(r *ruledomain.PricingRule) { r.Priority = -1 },
			wantField: "priority",
			wantErr:   ErrInvalidPriority,
		},
		{
			name:      "priority 1000 rejected",
			mutate:    func(r *ruledomain.PricingRule) { r.Priority = 1000 },
			wantField: "priority",
			wantErr:   ErrInvalidPriority,
		},
		{
			name:      "zero percent adjustment",
			mutate:    func(r *ruledomain.PricingRule) { r.AdjustmentValue = 0 },
			wantField: "adjustment_value",
			wantErr:   ErrZeroAdjustment,
		},
		{
			name: "zero flat adjustment",
			mutate: func(r *ruledomain.PricingRule) {
				r.AdjustmentType = ruledomain.Flat
				r.AdjustmentValue = 0
			},
			wantField: "adjustment_value",
			wantErr:   ErrZeroAdjustment,
		},
		{
			name:      "negative min cap",
			mutate:    func(r *ruledomain.PricingRule) { r.MinRateCapCents = i64(-1) },
			wantField: "min_rate_cap_cents",
			wantErr:   ErrInvalidCap,
		},
		{
			name:      "negative max cap",
			mutate:    func(r *ruledomain.PricingRule) { r.MaxRateCapCents = i64(-500) },
			wantField: "max_rate_cap_cents",
			wantErr:   ErrInvalidCap,
		},
		{
			name: "max cap below min cap",
			mutate: func(r *ruledomain.PricingRule) {
				r.MinRateCapCents = i64(20000)
				r.MaxRateCapCents = i64(15000)
			},
			wantField: "max_rate_cap_cents",
			wantErr:   ErrCapOrder,
		},
		{
			name: "end date before start date",
			mutate: func(r *ruledomain.PricingRule) {
				r.StartDate = datePtr(2026, time.July, 10)
				r.EndDate = datePtr(2026, time.July, 9)
			},
			wantField: "end_date",
			wantErr:   ErrDateOrder,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(&draft)

			err := Validate(draft)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
			assert.True(t, errors.Is(err, tc.wantErr))
		})
	}
}

func TestValidateBoundaries(t *testing.T) {
	draft := validDraft()
	draft.Priority = 999
	assert.NoError(t, Validate(draft))

	draft = validDraft()
	draft.Priority = 0
	assert.NoError(t, Validate(draft))

	draft = validDraft()
	draft.Name = strings.Repeat("x", 100)
	assert.NoError(t, Validate(draft))

	// Equal caps and a single-day date range are both legal.
	draft = validDraft()
	draft.MinRateCapCents = i64(10000)
	draft.MaxRateCapCents = i64(10000)
	draft.StartDate = datePtr(2026, time.July, 4)
	draft.EndDate = datePtr(2026, time.July, 4)
	assert.NoError(t, Validate(draft))
}

func TestValidateFirstFailureWins(t *testing.T) {
	draft := validDraft()
	draft.Name = ""
	draft.Priority = 5000
	draft.AdjustmentValue = 0

	err := Validate(draft)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidName))
}
