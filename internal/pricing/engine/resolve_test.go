package engine

import (
	"testing"

	ruledomain "github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adjustmentRule(id int64, priority int, mode ruledomain.StackMode, typ ruledomain.AdjustmentType, value float64) ruledomain.PricingRule {
	return namedRule(id, priority, func(r *ruledomain.PricingRule) {
		r.StackMode = mode
		r.AdjustmentType = typ
		r.AdjustmentValue = value
	})
}

func TestResolveEmptyMatchReturnsBase(t *testing.T) {
	for _, base := range []int64{0, 1, 9999, 10000, 123456} {
		res, err := Resolve(base, nil)
		require.NoError(t, err)
		assert.Equal(t, base, res.FinalRateCents)
		assert.Empty(t, res.Applied)
	}
}

func TestResolveIsPure(t *testing.T) {
	rules := []ruledomain.PricingRule{
		adjustmentRule(1, 0, ruledomain.Additive, ruledomain.Percent, 0.10),
		adjustmentRule(2, 1, ruledomain.Max, ruledomain.Flat, 2500),
	}

	first, err := Resolve(10000, rules)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Resolve(10000, rules)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolveAdditiveCompounds(t *testing.T) {
	// +10% then +5% on $100.00: each step multiplies the running total,
	// not the original base: 10000 -> 11000 -> 11550.
	rules := []ruledomain.PricingRule{
		adjustmentRule(1, 0, ruledomain.Additive, ruledomain.Percent, 0.10),
		adjustmentRule(2, 1, ruledomain.Additive, ruledomain.Percent, 0.05),
	}

	res, err := Resolve(10000, rules)
	require.NoError(t, err)
	assert.Equal(t, int64(11550), res.FinalRateCents)

	require.Len(t, res.Applied, 2)
	assert.Equal(t, int64(1000), res.Applied[0].DeltaCents)
	assert.Equal(t, int64(11000), res.Applied[0].RateCents)
	assert.Equal(t, int64(550), res.Applied[1].DeltaCents)
	assert.Equal(t, int64(11550), res.Applied[1].RateCents)
}

func TestResolveMaxModeKeepsBestCandidate(t *testing.T) {
	// Max rules evaluate independently against the original base; the
	// resolver keeps the best candidate, not the sum.
	rules := []ruledomain.PricingRule{
		adjustmentRule(1, 0, ruledomain.Max, ruledomain.Percent, 0.20),
		adjustmentRule(2, 1, ruledomain.Max, ruledomain.Percent, 0.05),
	}

	res, err := Resolve(10000, rules)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), res.FinalRateCents)
}

func TestResolveMaxNeverLowersRunningTotal(t *testing.T) {
	rules := []ruledomain.PricingRule{
		adjustmentRule(1, 0, ruledomain.Additive, ruledomain.Percent, 0.50),
		adjustmentRule(2, 1, ruledomain.Max, ruledomain.Percent, 0.10),
	}

	res, err := Resolve(10000, rules)
	require.NoError(t, err)
	// base+10% = 11000 loses to the accumulated 15000.
	assert.Equal(t, int64(15000), res.FinalRateCents)
}

func TestResolveOverrideShortCircuits(t *testing.T) {
	rules := []ruledomain.PricingRule{
		adjustmentRule(1, 1, ruledomain.Override, ruledomain.Flat, 500),
		adjustmentRule(2, 2, ruledomain.Additive, ruledomain.Percent, 0.50),
	}

	res, err := Resolve(10000, rules)
	require.NoError(t, err)
	// base + $5.00 flat; the lower-priority additive rule never applies.
	assert.Equal(t, int64(10500), res.FinalRateCents)
	require.Len(t, res.Applied, 1)
	assert.Equal(t, ruledomain.Override, res.Applied[0].StackMode)
}

func TestResolveOverrideReplacesAccumulatedEffect(t *testing.T) {
	rules := []ruledomain.PricingRule{
		adjustmentRule(1, 0, ruledomain.Additive, ruledomain.Percent, 0.25),
		adjustmentRule(2, 1, ruledomain.Override, ruledomain.Flat, -1000),
		adjustmentRule(3, 2, ruledomain.Override, ruledomain.Flat, 9000),
	}

	res, err := Resolve(10000, rules)
	require.NoError(t, err)
	// First override in priority order wins; the second is never folded.
	assert.Equal(t, int64(9000), res.FinalRateCents)
	assert.Len(t, res.Applied, 2)
}

func TestResolveSingleRuleAnyMode(t *testing.T) {
	for _, mode := range []ruledomain.StackMode{ruledomain.Additive, ruledomain.Max, ruledomain.Override} {
		rule := adjustmentRule(1, 0, mode, ruledomain.Percent, 0.10)
		res, err := Resolve(10000, []ruledomain.PricingRule{rule})
		require.NoError(t, err)
		assert.Equal(t, int64(11000), res.FinalRateCents, "mode %s", mode)
	}
}

func TestResolveCapClamping(t *testing.T) {
	rule := adjustmentRule(1, 0, ruledomain.Additive, ruledomain.Percent, 0.80)
	rule.MaxRateCapCents = i64(15000)

	res, err := Resolve(10000, []ruledomain.PricingRule{rule})
	require.NoError(t, err)
	// +80% would be $180.00; the rule's own ceiling clamps to $150.00.
	assert.Equal(t, int64(15000), res.FinalRateCents)
	assert.True(t, res.Capped)
}

func TestResolveMinCapRaisesRate(t *testing.T) {
	rule := adjustmentRule(1, 0, ruledomain.Additive, ruledomain.Flat, -6000)
	rule.MinRateCapCents = i64(8000)

	res, err := Resolve(10000, []ruledomain.PricingRule{rule})
	require.NoError(t, err)
	assert.Equal(t, int64(8000), res.FinalRateCents)
	assert.True(t, res.Capped)
}

func TestResolveCapsIntersectAcrossRules(t *testing.T) {
	a := adjustmentRule(1, 0, ruledomain.Additive, ruledomain.Percent, 0.10)
	a.MaxRateCapCents = i64(20000)
	b := adjustmentRule(2, 1, ruledomain.Additive, ruledomain.Percent, 0.10)
	b.MaxRateCapCents = i64(11500)

	res, err := Resolve(10000, []ruledomain.PricingRule{a, b})
	require.NoError(t, err)
	// Tightest ceiling wins: 12100 clamps to 11500.
	assert.Equal(t, int64(11500), res.FinalRateCents)
}

func TestResolveCapConflictReported(t *testing.T) {
	a := adjustmentRule(1, 0, ruledomain.Additive, ruledomain.Percent, 0.10)
	a.MinRateCapCents = i64(20000)
	b := adjustmentRule(2, 1, ruledomain.Additive, ruledomain.Percent, 0.10)
	b.MaxRateCapCents = i64(15000)

	res, err := Resolve(10000, []ruledomain.PricingRule{a, b})
	require.Error(t, err)
	assert.Nil(t, res)

	var conflict *CapConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(20000), conflict.MinCapCents)
	assert.Equal(t, int64(15000), conflict.MaxCapCents)
}

func TestResolveNegativeResultPermitted(t *testing.T) {
	rule := adjustmentRule(1, 0, ruledomain.Additive, ruledomain.Flat, -25000)

	res, err := Resolve(10000, []ruledomain.PricingRule{rule})
	require.NoError(t, err)
	// The engine does not floor at zero; hiding a misconfigured rule is
	// worse than surfacing a negative rate.
	assert.Equal(t, int64(-15000), res.FinalRateCents)
}

func TestResolvePercentRoundsPerStep(t *testing.T) {
	// 3.33% of $9.99: 33.2667 cents rounds to 33 before the next step.
	first := adjustmentRule(1, 0, ruledomain.Additive, ruledomain.Percent, 0.0333)
	second := adjustmentRule(2, 1, ruledomain.Additive, ruledomain.Flat, 1)

	res, err := Resolve(999, []ruledomain.PricingRule{first, second})
	require.NoError(t, err)
	assert.Equal(t, int64(999+33+1), res.FinalRateCents)
}

func TestResolveUnknownStackModePanics(t *testing.T) {
	rule := adjustmentRule(1, 0, ruledomain.StackMode("bogus"), ruledomain.Percent, 0.10)
	assert.Panics(t, func() {
		_, _ = Resolve(10000, []ruledomain.PricingRule{rule})
	})
}
