package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, rule *PricingRule) error
	Replace(ctx context.Context, rule *PricingRule) error
	FindByID(ctx context.Context, id snowflake.ID) (*PricingRule, error)
	// ListByCampground returns the campground's full rule set ordered by
	// (priority asc, id asc), the order the matcher expects.
	ListByCampground(ctx context.Context, campgroundID snowflake.ID) ([]PricingRule, error)
	CountByCode(ctx context.Context, campgroundID snowflake.ID, code string) (int64, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
