// Package cache stores resolved nightly rates in Redis. The pricing engine
// itself never caches; this sits in front of it, keyed on everything the
// resolution depends on, including the rule-set checksum.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/joshuahuffman02/Keepr-sub014/internal/config"
	quotedomain "github.com/joshuahuffman02/Keepr-sub014/internal/ratequote/domain"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type RateCache struct {
	client *redis.Client
	holder *config.PricingConfigHolder
	log    *zap.Logger
}

// New returns a rate cache backed by Redis, or a no-op cache when no Redis
// address is configured.
func New(lc fx.Lifecycle, cfg config.Config, holder *config.PricingConfigHolder, log *zap.Logger) *RateCache {
	c := &RateCache{holder: holder, log: log.Named("ratequote.cache")}

	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return c
	}

	c.client = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.client.Close()
		},
	})

	return c
}

func (c *RateCache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *RateCache) Get(ctx context.Context, key string) (*quotedomain.NightRate, bool) {
	if !c.Enabled() {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var night quotedomain.NightRate
	if err := json.Unmarshal(raw, &night); err != nil {
		c.log.Warn("cache entry corrupt, dropping", zap.String("key", key))
		_ = c.client.Del(ctx, key).Err()
		return nil, false
	}
	night.Cached = true
	return &night, true
}

func (c *RateCache) Set(ctx context.Context, key string, night quotedomain.NightRate) {
	if !c.Enabled() {
		return
	}

	night.Cached = false
	raw, err := json.Marshal(night)
	if err != nil {
		return
	}

	ttl := c.holder.Get().QuoteCacheTTL()
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.Warn("cache write failed", zap.Error(err))
	}
}

// Key builds the cache key for one night's resolution.
func Key(campgroundID, siteClassID string, date time.Time, baseRateCents int64, checksum string) string {
	parts := []string{
		"rate",
		strings.ToLower(strings.TrimSpace(campgroundID)),
		strings.ToLower(strings.TrimSpace(siteClassID)),
		date.UTC().Format(time.DateOnly),
		fmt.Sprintf("%d", baseRateCents),
		checksum,
	}
	return strings.Join(parts, "|")
}
