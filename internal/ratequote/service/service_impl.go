package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/joshuahuffman02/Keepr-sub014/internal/observability/metrics"
	"github.com/joshuahuffman02/Keepr-sub014/internal/pricing/engine"
	ruledomain "github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/domain"
	"github.com/joshuahuffman02/Keepr-sub014/internal/ratequote/cache"
	quotedomain "github.com/joshuahuffman02/Keepr-sub014/internal/ratequote/domain"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	RuleRepo ruledomain.Repository
	Cache    *cache.RateCache        `optional:"true"`
	Metrics  *metrics.PricingMetrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	ruleRepo ruledomain.Repository
	cache    *cache.RateCache
	metrics  *metrics.PricingMetrics
}

func New(p Params) quotedomain.Service {
	return &Service{
		log:      p.Log.Named("ratequote.service"),
		ruleRepo: p.RuleRepo,
		cache:    p.Cache,
		metrics:  p.Metrics,
	}
}

func (s *Service) Evaluate(ctx context.Context, req quotedomain.EvaluateRequest) (*quotedomain.Quote, error) {
	nights, err := stayNights(req)
	if err != nil {
		return nil, err
	}
	if req.BaseRateCents < 0 {
		return nil, quotedomain.ErrInvalidBaseRate
	}

	rules, campgroundID, err := s.resolveRuleSet(ctx, req)
	if err != nil {
		return nil, err
	}

	checksum := ruleSetChecksum(rules)
	inlinePreview := len(req.Rules) > 0

	quote := &quotedomain.Quote{
		QuoteID:         ulid.Make().String(),
		CampgroundID:    campgroundID,
		SiteClassID:     req.SiteClassID,
		RuleSetChecksum: checksum,
		Nights:          make([]quotedomain.NightRate, 0, len(nights)),
	}

	for _, night := range nights {
		resolved, err := s.resolveNight(ctx, req, rules, checksum, night, inlinePreview)
		if err != nil {
			if _, ok := err.(*engine.CapConflictError); ok && s.metrics != nil {
				s.metrics.CapConflicts.Inc()
			}
			return nil, err
		}
		quote.Nights = append(quote.Nights, *resolved)
		quote.TotalCents += resolved.FinalRateCents

		if resolved.FinalRateCents < 0 {
			s.log.Warn("resolved rate is negative, rule set likely misconfigured",
				zap.String("campground_id", campgroundID),
				zap.Time("date", night),
				zap.Int64("final_rate_cents", resolved.FinalRateCents),
			)
		}
	}

	if s.metrics != nil {
		s.metrics.QuotesTotal.Inc()
	}

	return quote, nil
}

func (s *Service) resolveNight(
	ctx context.Context,
	req quotedomain.EvaluateRequest,
	rules []ruledomain.PricingRule,
	checksum string,
	night time.Time,
	inlinePreview bool,
) (*quotedomain.NightRate, error) {
	var key string
	// Inline previews bypass the cache: drafts have no stable identity.
	if !inlinePreview && s.cache.Enabled() {
		key = cache.Key(req.CampgroundID, req.SiteClassID, night, req.BaseRateCents, checksum)
		if hit, ok := s.cache.Get(ctx, key); ok {
			if s.metrics != nil {
				s.metrics.CacheHits.Inc()
			}
			return hit, nil
		}
		if s.metrics != nil {
			s.metrics.CacheMisses.Inc()
		}
	}

	matched := engine.Match(rules, night, req.SiteClassID)
	resolution, err := engine.Resolve(req.BaseRateCents, matched)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.NightsResolved.Inc()
		s.metrics.RulesEvaluated.Add(float64(len(resolution.Applied)))
	}

	resolved := quotedomain.NightRate{
		Date:           night,
		BaseRateCents:  resolution.BaseRateCents,
		FinalRateCents: resolution.FinalRateCents,
		Applied:        resolution.Applied,
		Capped:         resolution.Capped,
	}

	if key != "" {
		s.cache.Set(ctx, key, resolved)
	}

	return &resolved, nil
}

func (s *Service) resolveRuleSet(ctx context.Context, req quotedomain.EvaluateRequest) ([]ruledomain.PricingRule, string, error) {
	if len(req.Rules) > 0 {
		rules, err := gateInlineRules(req.Rules)
		if err != nil {
			return nil, "", err
		}
		return rules, strings.TrimSpace(req.CampgroundID), nil
	}

	campgroundID, err := snowflake.ParseString(strings.TrimSpace(req.CampgroundID))
	if err != nil {
		return nil, "", quotedomain.ErrInvalidCampground
	}

	rules, err := s.ruleRepo.ListByCampground(ctx, campgroundID)
	if err != nil {
		return nil, "", err
	}
	return rules, campgroundID.String(), nil
}

// gateInlineRules normalizes and validates caller-supplied preview drafts.
// Stored rules were gated at authoring time, but inline drafts arrive straight
// off the wire; the resolver panics on malformed enums, so nothing unchecked
// may reach it.
func gateInlineRules(drafts []ruledomain.PricingRule) ([]ruledomain.PricingRule, error) {
	rules := make([]ruledomain.PricingRule, 0, len(drafts))
	for _, draft := range drafts {
		kind, err := ruledomain.ParseKind(draft.Kind)
		if err != nil {
			return nil, err
		}
		stackMode, err := ruledomain.ParseStackMode(draft.StackMode)
		if err != nil {
			return nil, err
		}
		adjustmentType, err := ruledomain.ParseAdjustmentType(draft.AdjustmentType)
		if err != nil {
			return nil, err
		}

		draft.Kind = kind
		draft.StackMode = stackMode
		draft.AdjustmentType = adjustmentType

		if err := engine.Validate(draft); err != nil {
			return nil, err
		}
		rules = append(rules, draft)
	}
	return rules, nil
}

// stayNights expands the request into the list of nights to price: either
// the single Date, or every night in [ArrivalDate, DepartureDate).
func stayNights(req quotedomain.EvaluateRequest) ([]time.Time, error) {
	if req.Date != nil {
		return []time.Time{dateOnly(*req.Date)}, nil
	}
	if req.ArrivalDate == nil || req.DepartureDate == nil {
		return nil, quotedomain.ErrMissingDate
	}

	arrival := dateOnly(*req.ArrivalDate)
	departure := dateOnly(*req.DepartureDate)
	if !departure.After(arrival) {
		return nil, quotedomain.ErrInvalidDateRange
	}

	nights := make([]time.Time, 0, int(departure.Sub(arrival).Hours()/24))
	for d := arrival; d.Before(departure); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights, nil
}

// ruleSetChecksum fingerprints a rule set so cached resolutions go stale the
// moment any rule is created, replaced or deleted.
func ruleSetChecksum(rules []ruledomain.PricingRule) string {
	var b strings.Builder
	for _, r := range rules {
		fmt.Fprintf(&b, "%s|%d|%s|%s|%g|%s\n",
			r.ID.String(),
			r.Priority,
			r.StackMode,
			r.AdjustmentType,
			r.AdjustmentValue,
			r.UpdatedAt.UTC().Format(time.RFC3339Nano),
		)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
