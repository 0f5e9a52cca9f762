package migration

import (
	"github.com/amani-hq/amani/internal/config"
	"github.com/amani-hq/amani/internal/resources"
	"github.com/amani-hq/amani/internal/sequence"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		models := resources.Models()
		models = append(models, &sequence.Counter{})
		return conn.AutoMigrate(models...)
	}),
)
