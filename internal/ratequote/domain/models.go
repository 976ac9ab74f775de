// Package domain defines the rate quoting contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/joshuahuffman02/Keepr-sub014/internal/pricing/engine"
	ruledomain "github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/domain"
)

// EvaluateRequest asks for a resolved rate for a single night (Date) or a
// per-night breakdown of a stay ([ArrivalDate, DepartureDate)). When Rules is
// non-empty the stored rule set is bypassed entirely, which is how the
// authoring UI previews unsaved drafts.
type EvaluateRequest struct {
	CampgroundID  string                   `json:"campground_id"`
	SiteClassID   string                   `json:"site_class_id"`
	BaseRateCents int64                    `json:"base_rate_cents"`
	Date          *time.Time               `json:"date"`
	ArrivalDate   *time.Time               `json:"arrival_date"`
	DepartureDate *time.Time               `json:"departure_date"`
	Rules         []ruledomain.PricingRule `json:"rules"`
}

// NightRate is the resolved rate for one night.
type NightRate struct {
	Date           time.Time            `json:"date"`
	BaseRateCents  int64                `json:"base_rate_cents"`
	FinalRateCents int64                `json:"final_rate_cents"`
	Applied        []engine.AppliedRule `json:"applied,omitempty"`
	Capped         bool                 `json:"capped"`
	Cached         bool                 `json:"cached"`
}

// Quote is a priced stay. RuleSetChecksum fingerprints the rule set that
// produced it so cached nights are invalidated when any rule changes.
type Quote struct {
	QuoteID         string      `json:"quote_id"`
	CampgroundID    string      `json:"campground_id"`
	SiteClassID     string      `json:"site_class_id,omitempty"`
	RuleSetChecksum string      `json:"rule_set_checksum"`
	Nights          []NightRate `json:"nights"`
	TotalCents      int64       `json:"total_cents"`
}

type Service interface {
	Evaluate(ctx context.Context, req EvaluateRequest) (*Quote, error)
}

var (
	ErrInvalidCampground = errors.New("invalid_campground")
	ErrInvalidBaseRate   = errors.New("invalid_base_rate")
	ErrInvalidDateRange  = errors.New("invalid_date_range")
	ErrMissingDate       = errors.New("missing_date")
)
