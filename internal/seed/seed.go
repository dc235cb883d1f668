package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	orderdomain "github.com/smallbiznis/compass/internal/order/domain"
	productdomain "github.com/smallbiznis/compass/internal/product/domain"
	userdomain "github.com/smallbiznis/compass/internal/user/domain"
)

// EnsureDemoData seeds a small storefront data set so the dashboard renders
// something meaningful on a fresh install. Idempotent: seeding is skipped
// when any user already exists.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userdomain.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		users := []userdomain.User{
			{
				ID:          node.Generate(),
				Email:       "ava@demo.local",
				Name:        "Ava Chen",
				LastLoginAt: now.Add(-2 * 24 * time.Hour),
			},
			{
				ID:          node.Generate(),
				Email:       "ben@demo.local",
				Name:        "Ben Ortiz",
				LastLoginAt: now.Add(-12 * 24 * time.Hour),
			},
			{
				ID:          node.Generate(),
				Email:       "cora@demo.local",
				Name:        "Cora Diallo",
				LastLoginAt: now.Add(-45 * 24 * time.Hour),
			},
		}
		for i := range users {
			users[i].Metadata = datatypes.JSONMap{}
			users[i].CreatedAt = now
			users[i].UpdatedAt = now
			if err := tx.Create(&users[i]).Error; err != nil {
				return err
			}
		}

		products := []productdomain.Product{
			{ID: node.Generate(), Name: "Canvas Tote", Category: "accessories", Stock: 42, Price: 24.00},
			{ID: node.Generate(), Name: "Ceramic Mug", Category: "kitchen", Stock: 8, Price: 18.50},
			{ID: node.Generate(), Name: "Linen Apron", Category: "kitchen", Stock: 0, Price: 39.00},
			{ID: node.Generate(), Name: "Desk Planter", Category: "home", Stock: 17, Price: 32.75},
		}
		for i := range products {
			products[i].Metadata = datatypes.JSONMap{}
			products[i].CreatedAt = now
			products[i].UpdatedAt = now
			if err := tx.Create(&products[i]).Error; err != nil {
				return err
			}
		}

		orders := []orderdomain.Order{
			{ID: node.Generate(), UserID: users[0].ID, TotalAmount: 1042.00, Status: "completed", OrderedAt: now.Add(-3 * 24 * time.Hour)},
			{ID: node.Generate(), UserID: users[0].ID, TotalAmount: 57.25, Status: "completed", OrderedAt: now.Add(-40 * 24 * time.Hour)},
			{ID: node.Generate(), UserID: users[1].ID, TotalAmount: 85.50, Status: "completed", OrderedAt: now.Add(-10 * 24 * time.Hour)},
			{ID: node.Generate(), UserID: users[2].ID, TotalAmount: 24.00, Status: "completed", OrderedAt: now.Add(-70 * 24 * time.Hour)},
		}
		for i := range orders {
			orders[i].Metadata = datatypes.JSONMap{}
			orders[i].CreatedAt = now
			orders[i].UpdatedAt = now
			if err := tx.Create(&orders[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
