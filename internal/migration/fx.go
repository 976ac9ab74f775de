package migration

import (
	"github.com/joshuahuffman02/Keepr-sub014/internal/config"
	ruledomain "github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if cfg.DBType != "postgres" {
			// Versioned migrations target postgres. Other dialects are for
			// local experiments, where the gorm schema sync is enough.
			log.Info("skipping versioned migrations", zap.String("db_type", cfg.DBType))
			return conn.AutoMigrate(&ruledomain.PricingRule{})
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
