package migration

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/shopdesk/internal/clock"
	"github.com/smallbiznis/shopdesk/internal/config"
	"github.com/smallbiznis/shopdesk/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node, c clock.Clock, log *zap.Logger) error {
		if err := RunMigrations(conn); err != nil {
			return err
		}
		if !cfg.SeedDemoCatalog || cfg.IsProduction() {
			return nil
		}

		seeded, err := seed.EnsureDemoCatalog(conn, node, clock.Today(c))
		if err != nil {
			return err
		}
		if seeded {
			log.Info("demo catalog seeded")
		}
		return nil
	}),
)
