package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/joshuahuffman02/Keepr-sub014/internal/clock"
	"github.com/joshuahuffman02/Keepr-sub014/internal/pricing/engine"
	ruledomain "github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  ruledomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  ruledomain.Repository
}

func New(p Params) ruledomain.Service {
	return &Service{
		log:   p.Log.Named("pricingrule.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req ruledomain.CreateRequest) (*ruledomain.PricingRule, error) {
	entity, err := s.buildRule(req)
	if err != nil {
		return nil, err
	}

	// Reject the draft outright on the first invariant violation; nothing
	// is persisted on failure.
	if err := engine.Validate(*entity); err != nil {
		return nil, err
	}

	// Cross-rule consistency is a store-level concern; the engine's
	// validator only sees one rule at a time.
	taken, err := s.repo.CountByCode(ctx, entity.CampgroundID, entity.Code)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ruledomain.ErrDuplicateCode
	}

	now := s.clock.Now()
	entity.ID = s.genID.Generate()
	entity.CreatedAt = now
	entity.UpdatedAt = now

	if err := s.repo.Insert(ctx, entity); err != nil {
		return nil, err
	}

	s.log.Info("pricing rule created",
		zap.String("rule_id", entity.ID.String()),
		zap.String("campground_id", entity.CampgroundID.String()),
		zap.String("kind", string(entity.Kind)),
		zap.Int("priority", entity.Priority),
	)

	return entity, nil
}

func (s *Service) Update(ctx context.Context, id string, req ruledomain.CreateRequest) (*ruledomain.PricingRule, error) {
	ruleID, err := parseID(id)
	if err != nil {
		return nil, ruledomain.ErrInvalidID
	}

	existing, err := s.repo.FindByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ruledomain.ErrNotFound
	}

	entity, err := s.buildRule(req)
	if err != nil {
		return nil, err
	}
	if err := engine.Validate(*entity); err != nil {
		return nil, err
	}

	// Renaming onto another rule's code is a collision; keeping the same
	// code is not, so only check when the code actually changes.
	if entity.Code != existing.Code {
		taken, err := s.repo.CountByCode(ctx, existing.CampgroundID, entity.Code)
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, ruledomain.ErrDuplicateCode
		}
	}

	// Full replacement. The ID and creation timestamp survive so the
	// priority tiebreak (creation order) is stable across edits.
	entity.ID = existing.ID
	entity.CampgroundID = existing.CampgroundID
	entity.CreatedAt = existing.CreatedAt
	entity.UpdatedAt = s.clock.Now()

	if err := s.repo.Replace(ctx, entity); err != nil {
		return nil, err
	}

	s.log.Info("pricing rule replaced", zap.String("rule_id", entity.ID.String()))

	return entity, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ruledomain.PricingRule, error) {
	ruleID, err := parseID(id)
	if err != nil {
		return nil, ruledomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, ruledomain.ErrNotFound
	}
	return entity, nil
}

func (s *Service) List(ctx context.Context, campgroundID string) ([]ruledomain.PricingRule, error) {
	cgID, err := parseID(campgroundID)
	if err != nil {
		return nil, ruledomain.ErrInvalidCampground
	}
	return s.repo.ListByCampground(ctx, cgID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ruleID, err := parseID(id)
	if err != nil {
		return ruledomain.ErrInvalidID
	}

	existing, err := s.repo.FindByID(ctx, ruleID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ruledomain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, ruleID); err != nil {
		return err
	}

	s.log.Info("pricing rule deleted", zap.String("rule_id", ruleID.String()))
	return nil
}

func (s *Service) buildRule(req ruledomain.CreateRequest) (*ruledomain.PricingRule, error) {
	campgroundID, err := parseID(req.CampgroundID)
	if err != nil {
		return nil, ruledomain.ErrInvalidCampground
	}

	kind, err := ruledomain.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	stackMode, err := ruledomain.ParseStackMode(req.StackMode)
	if err != nil {
		return nil, err
	}
	adjustmentType, err := ruledomain.ParseAdjustmentType(req.AdjustmentType)
	if err != nil {
		return nil, err
	}
	dowMask, err := parseDowMask(req.DowMask)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	name := strings.TrimSpace(req.Name)
	entity := &ruledomain.PricingRule{
		CampgroundID:    campgroundID,
		Code:            slug.Make(name),
		Name:            name,
		Kind:            kind,
		Priority:        req.Priority,
		StackMode:       stackMode,
		AdjustmentType:  adjustmentType,
		AdjustmentValue: req.AdjustmentValue,
		SiteClassID:     normalizeSiteClass(req.SiteClassID),
		DowMask:         dowMask,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MinRateCapCents: req.MinRateCapCents,
		MaxRateCapCents: req.MaxRateCapCents,
		Active:          active,
	}
	if req.Metadata != nil {
		entity.Metadata = datatypes.JSONMap(req.Metadata)
	}

	return entity, nil
}

func normalizeSiteClass(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		// Absent scope, not "scoped to nothing".
		return nil
	}
	return &trimmed
}

func parseDowMask(mask []int) (datatypes.JSONSlice[int], error) {
	if len(mask) == 0 {
		return nil, nil
	}
	seen := make(map[int]bool, len(mask))
	out := make(datatypes.JSONSlice[int], 0, len(mask))
	for _, d := range mask {
		if d < 0 || d > 6 {
			return nil, ruledomain.ErrInvalidDowMask
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out, nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
