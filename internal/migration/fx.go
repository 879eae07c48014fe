package migration

import (
	"github.com/smallbiznis/crmd/internal/config"
	customerdomain "github.com/smallbiznis/crmd/internal/customer/domain"
	orderdomain "github.com/smallbiznis/crmd/internal/order/domain"
	productdomain "github.com/smallbiznis/crmd/internal/product/domain"
	"github.com/smallbiznis/crmd/internal/seed"
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
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// The versioned migrations are written for postgres; other
			// dialects get their schema from the models directly.
			if err := conn.AutoMigrate(
				&customerdomain.Customer{},
				&productdomain.Product{},
				&orderdomain.Order{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)
