package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/compass/internal/config"
	orderdomain "github.com/smallbiznis/compass/internal/order/domain"
	productdomain "github.com/smallbiznis/compass/internal/product/domain"
	"github.com/smallbiznis/compass/internal/seed"
	userdomain "github.com/smallbiznis/compass/internal/user/domain"
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
			// mysql and sqlite rely on gorm schema sync; versioned
			// migrations are maintained for postgres only.
			if err := conn.AutoMigrate(
				&userdomain.User{},
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
