package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingConfig holds operator-tunable pricing policy that sits outside the
// rule set itself: the default deposit policy applied when a request does not
// name one, quote cache lifetime, and the forecast lookback window.
type PricingConfig struct {
	DepositPolicyType  string  `mapstructure:"depositPolicyType"`
	DepositPolicyValue float64 `mapstructure:"depositPolicyValue"`
	QuoteCacheTTLSecs  int     `mapstructure:"quoteCacheTtlSecs"`
	ForecastWindowDays int     `mapstructure:"forecastWindowDays"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		DepositPolicyType:  "percent",
		DepositPolicyValue: 0.25,
		QuoteCacheTTLSecs:  300,
		ForecastWindowDays: 28,
	}
}

func (c PricingConfig) QuoteCacheTTL() time.Duration {
	return time.Duration(c.QuoteCacheTTLSecs) * time.Second
}

// PricingConfigHolder serves the current pricing policy and hot-reloads it
// when the backing file changes, so operators can retune deposits without a
// restart.
type PricingConfigHolder struct {
	current atomic.Value // holds PricingConfig
}

func NewPricingConfigHolder() (*PricingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/keepr/config")
	v.AddConfigPath("/etc/keepr")
	v.AddConfigPath(".")

	v.SetEnvPrefix("KEEPR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultPricingConfig()
		v.SetDefault("pricing.depositPolicyType", defaults.DepositPolicyType)
		v.SetDefault("pricing.depositPolicyValue", defaults.DepositPolicyValue)
		v.SetDefault("pricing.quoteCacheTtlSecs", defaults.QuoteCacheTTLSecs)
		v.SetDefault("pricing.forecastWindowDays", defaults.ForecastWindowDays)
	}

	var cfg PricingConfig
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	if err := validatePricingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingConfig
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingConfig(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// StaticPricingConfigHolder wraps a fixed config with no file watching,
// mostly for tests.
func StaticPricingConfigHolder(cfg PricingConfig) *PricingConfigHolder {
	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *PricingConfigHolder) Get() PricingConfig {
	return h.current.Load().(PricingConfig)
}

func validatePricingConfig(cfg PricingConfig) error {
	switch cfg.DepositPolicyType {
	case "percent", "flat", "first_night":
	default:
		return errors.New("pricing.depositPolicyType must be percent, flat or first_night")
	}
	if cfg.DepositPolicyValue < 0 {
		return errors.New("pricing.depositPolicyValue cannot be negative")
	}
	if cfg.QuoteCacheTTLSecs < 0 {
		return errors.New("pricing.quoteCacheTtlSecs cannot be negative")
	}
	if cfg.ForecastWindowDays <= 0 {
		return errors.New("pricing.forecastWindowDays must be positive")
	}
	return nil
}
