package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	ruledomain "github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/domain"
	"github.com/joshuahuffman02/Keepr-sub014/pkg/db/option"
	"github.com/joshuahuffman02/Keepr-sub014/pkg/repository"
	"gorm.io/gorm"
)

type ruleRepository struct {
	db    *gorm.DB
	store repository.Repository[ruledomain.PricingRule]
}

func New(db *gorm.DB) ruledomain.Repository {
	return &ruleRepository{
		db:    db,
		store: repository.ProvideStore[ruledomain.PricingRule](db),
	}
}

func (r *ruleRepository) Insert(ctx context.Context, rule *ruledomain.PricingRule) error {
	return r.store.Create(ctx, rule)
}

// Replace writes every column, including cleared optional scopes. Partial
// patches are deliberately unsupported; rules are replaced wholesale.
func (r *ruleRepository) Replace(ctx context.Context, rule *ruledomain.PricingRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *ruleRepository) FindByID(ctx context.Context, id snowflake.ID) (*ruledomain.PricingRule, error) {
	return r.store.FindOne(ctx, &ruledomain.PricingRule{ID: id})
}

func (r *ruleRepository) ListByCampground(ctx context.Context, campgroundID snowflake.ID) ([]ruledomain.PricingRule, error) {
	rows, err := r.store.Find(ctx,
		&ruledomain.PricingRule{CampgroundID: campgroundID},
		option.WithOrderBy("priority asc, id asc"),
	)
	if err != nil {
		return nil, err
	}

	rules := make([]ruledomain.PricingRule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, *row)
	}
	return rules, nil
}

func (r *ruleRepository) CountByCode(ctx context.Context, campgroundID snowflake.ID, code string) (int64, error) {
	return r.store.Count(ctx, &ruledomain.PricingRule{
		CampgroundID: campgroundID,
		Code:         code,
	})
}

func (r *ruleRepository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.store.Delete(ctx, id.String())
}
