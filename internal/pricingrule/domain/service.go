package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*PricingRule, error)
	Update(ctx context.Context, id string, req CreateRequest) (*PricingRule, error)
	Get(ctx context.Context, id string) (*PricingRule, error)
	List(ctx context.Context, campgroundID string) ([]PricingRule, error)
	Delete(ctx context.Context, id string) error
}

// CreateRequest carries an unvalidated rule draft. Update uses the same shape
// because rules are replaced wholesale, never patched.
type CreateRequest struct {
	CampgroundID    string         `json:"campground_id"`
	Name            string         `json:"name"`
	Kind            RuleKind       `json:"kind"`
	Priority        int            `json:"priority"`
	StackMode       StackMode      `json:"stack_mode"`
	AdjustmentType  AdjustmentType `json:"adjustment_type"`
	AdjustmentValue float64        `json:"adjustment_value"`
	SiteClassID     *string        `json:"site_class_id"`
	DowMask         []int          `json:"dow_mask"`
	StartDate       *time.Time     `json:"start_date"`
	EndDate         *time.Time     `json:"end_date"`
	MinRateCapCents *int64         `json:"min_rate_cap_cents"`
	MaxRateCapCents *int64         `json:"max_rate_cap_cents"`
	Active          *bool          `json:"active"`
	Metadata        map[string]any `json:"metadata"`
}

var (
	ErrInvalidCampground     = errors.New("invalid_campground")
	ErrInvalidID             = errors.New("invalid_id")
	ErrInvalidKind           = errors.New("invalid_kind")
	ErrInvalidStackMode      = errors.New("invalid_stack_mode")
	ErrInvalidAdjustmentType = errors.New("invalid_adjustment_type")
	ErrInvalidDowMask        = errors.New("invalid_dow_mask")
	ErrDuplicateCode         = errors.New("duplicate_rule_code")
	ErrNotFound              = errors.New("pricing_rule_not_found")
)
