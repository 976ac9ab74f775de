// Package domain contains the pricing rule model and service contracts.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type RuleKind string

var (
	Season  RuleKind = "season"
	Weekend RuleKind = "weekend"
	Holiday RuleKind = "holiday"
	Event   RuleKind = "event"
	Demand  RuleKind = "demand"
)

type StackMode string

var (
	Additive StackMode = "additive"
	Max      StackMode = "max"
	Override StackMode = "override"
)

type AdjustmentType string

var (
	Percent AdjustmentType = "percent"
	Flat    AdjustmentType = "flat"
)

// ParseKind normalizes a caller-supplied rule kind. Enum values arrive from
// JSON in whatever casing the client used; everything downstream works on the
// canonical lowercase form.
func ParseKind(value RuleKind) (RuleKind, error) {
	switch strings.ToLower(strings.TrimSpace(string(value))) {
	case string(Season):
		return Season, nil
	case string(Weekend):
		return Weekend, nil
	case string(Holiday):
		return Holiday, nil
	case string(Event):
		return Event, nil
	case string(Demand):
		return Demand, nil
	default:
		return "", ErrInvalidKind
	}
}

func ParseStackMode(value StackMode) (StackMode, error) {
	switch strings.ToLower(strings.TrimSpace(string(value))) {
	case string(Additive):
		return Additive, nil
	case string(Max):
		return Max, nil
	case string(Override):
		return Override, nil
	default:
		return "", ErrInvalidStackMode
	}
}

func ParseAdjustmentType(value AdjustmentType) (AdjustmentType, error) {
	switch strings.ToLower(strings.TrimSpace(string(value))) {
	case string(Percent):
		return Percent, nil
	case string(Flat):
		return Flat, nil
	default:
		return "", ErrInvalidAdjustmentType
	}
}

// PricingRule is one configured rate adjustment for a campground.
//
// AdjustmentValue is a signed fraction for percent rules (0.15 = +15%) and a
// signed cents amount for flat rules. Caps are whole cents. Snowflake IDs are
// monotonically increasing, so ID order doubles as creation order; the match
// ordering contract (priority asc, then ID asc) depends on that.
type PricingRule struct {
	ID              snowflake.ID            `json:"id" gorm:"primaryKey"`
	CampgroundID    snowflake.ID            `json:"campground_id" gorm:"column:campground_id;not null;index"`
	Code            string                  `json:"code" gorm:"type:text;not null"`
	Name            string                  `json:"name" gorm:"type:text;not null"`
	Kind            RuleKind                `json:"kind" gorm:"type:text;not null"`
	Priority        int                     `json:"priority" gorm:"not null"`
	StackMode       StackMode               `json:"stack_mode" gorm:"column:stack_mode;type:text;not null"`
	AdjustmentType  AdjustmentType          `json:"adjustment_type" gorm:"type:text;not null"`
	AdjustmentValue float64                 `json:"adjustment_value" gorm:"not null"`
	SiteClassID     *string                 `json:"site_class_id,omitempty" gorm:"type:text"`
	DowMask         datatypes.JSONSlice[int] `json:"dow_mask,omitempty" gorm:"column:dow_mask"`
	StartDate       *time.Time              `json:"start_date,omitempty" gorm:"type:date"`
	EndDate         *time.Time              `json:"end_date,omitempty" gorm:"type:date"`
	MinRateCapCents *int64                  `json:"min_rate_cap_cents,omitempty"`
	MaxRateCapCents *int64                  `json:"max_rate_cap_cents,omitempty"`
	Active          bool                    `json:"active" gorm:"not null;default:true"`
	Metadata        datatypes.JSONMap       `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt       time.Time               `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time               `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PricingRule) TableName() string { return "pricing_rules" }
