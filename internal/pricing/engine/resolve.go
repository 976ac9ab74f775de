package engine

import (
	"fmt"
	"math"

	"github.com/bwmarrin/snowflake"
	ruledomain "github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/domain"
)

// AppliedRule records one rule's contribution to a resolution, in fold order.
type AppliedRule struct {
	RuleID     snowflake.ID         `json:"rule_id"`
	Code       string               `json:"code"`
	Name       string               `json:"name"`
	StackMode  ruledomain.StackMode `json:"stack_mode"`
	DeltaCents int64                `json:"delta_cents"`
	RateCents  int64                `json:"rate_cents"`
}

// Resolution is the outcome of folding matched rules over a base rate.
type Resolution struct {
	BaseRateCents  int64         `json:"base_rate_cents"`
	FinalRateCents int64         `json:"final_rate_cents"`
	Applied        []AppliedRule `json:"applied,omitempty"`
	MinCapCents    *int64        `json:"min_cap_cents,omitempty"`
	MaxCapCents    *int64        `json:"max_cap_cents,omitempty"`
	Capped         bool          `json:"capped"`
}

// Resolve folds the matched rules, in the order Match produced them, into a
// single nightly rate.
//
// Additive rules compound on the running total. Max rules are each evaluated
// against the original base and only raise the running total. An override
// rule replaces the accumulated result with base+delta and stops the fold, so
// when several override rules match only the first in priority order applies.
//
// Min caps intersect by taking the largest floor, max caps the smallest
// ceiling; the final rate is clamped after the fold. A floor above the
// ceiling returns *CapConflictError rather than silently preferring either
// bound. Percent deltas are rounded to whole cents per step; fractional cents
// are never carried. An empty matched list returns the base unchanged, and a
// negative result is returned as-is for the caller to flag.
func Resolve(baseRateCents int64, matched []ruledomain.PricingRule) (*Resolution, error) {
	acc := baseRateCents
	var minCap, maxCap *int64
	applied := make([]AppliedRule, 0, len(matched))

	for _, r := range matched {
		var delta int64
		switch r.StackMode {
		case ruledomain.Additive:
			delta = adjustmentDelta(r, acc)
			acc += delta
		case ruledomain.Max:
			delta = adjustmentDelta(r, baseRateCents)
			if candidate := baseRateCents + delta; candidate > acc {
				acc = candidate
			}
		case ruledomain.Override:
			delta = adjustmentDelta(r, baseRateCents)
			acc = baseRateCents + delta
		default:
			panic(fmt.Sprintf("engine: unknown stack mode %q on rule %s", r.StackMode, r.ID))
		}

		if r.MinRateCapCents != nil && (minCap == nil || *r.MinRateCapCents > *minCap) {
			v := *r.MinRateCapCents
			minCap = &v
		}
		if r.MaxRateCapCents != nil && (maxCap == nil || *r.MaxRateCapCents < *maxCap) {
			v := *r.MaxRateCapCents
			maxCap = &v
		}

		applied = append(applied, AppliedRule{
			RuleID:     r.ID,
			Code:       r.Code,
			Name:       r.Name,
			StackMode:  r.StackMode,
			DeltaCents: delta,
			RateCents:  acc,
		})

		if r.StackMode == ruledomain.Override {
			break
		}
	}

	if minCap != nil && maxCap != nil && *minCap > *maxCap {
		return nil, &CapConflictError{MinCapCents: *minCap, MaxCapCents: *maxCap}
	}

	final := acc
	if minCap != nil && final < *minCap {
		final = *minCap
	}
	if maxCap != nil && final > *maxCap {
		final = *maxCap
	}

	return &Resolution{
		BaseRateCents:  baseRateCents,
		FinalRateCents: final,
		Applied:        applied,
		MinCapCents:    minCap,
		MaxCapCents:    maxCap,
		Capped:         final != acc,
	}, nil
}

func adjustmentDelta(r ruledomain.PricingRule, referenceRateCents int64) int64 {
	switch r.AdjustmentType {
	case ruledomain.Percent:
		return roundCents(float64(referenceRateCents) * r.AdjustmentValue)
	case ruledomain.Flat:
		return roundCents(r.AdjustmentValue)
	default:
		panic(fmt.Sprintf("engine: unknown adjustment type %q on rule %s", r.AdjustmentType, r.ID))
	}
}

func roundCents(raw float64) int64 {
	return int64(math.Floor(raw + 0.5))
}
