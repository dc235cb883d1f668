package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smallbiznis/compass/internal/clock"
	"github.com/smallbiznis/compass/internal/product/domain"
	"github.com/smallbiznis/compass/internal/product/repository"
)

func newTestService(t *testing.T) (*Service, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Product{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	svc := &Service{
		db:    db,
		log:   zap.NewNop(),
		genID: node,
		clock: clk,
		repo:  repository.Provide(),
	}
	return svc, clk
}

func TestCreateProduct(t *testing.T) {
	svc, clk := newTestService(t)

	product, err := svc.Create(context.Background(), domain.CreateProductRequest{
		Name:     "  Ceramic Mug ",
		Category: "kitchen",
		Stock:    8,
		Price:    18.50,
	})
	require.NoError(t, err)

	assert.NotZero(t, product.ID)
	assert.Equal(t, "Ceramic Mug", product.Name)
	assert.Equal(t, int64(8), product.Stock)
	assert.Equal(t, clk.Now(), product.CreatedAt)

	resp, err := svc.List(context.Background(), domain.ListProductRequest{Category: "kitchen"})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, product.ID, resp.Products[0].ID)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateProductRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(context.Background(), domain.CreateProductRequest{Name: "X", Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	_, err = svc.Create(context.Background(), domain.CreateProductRequest{Name: "X", Price: -0.01})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestUpdateStock(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), domain.CreateProductRequest{Name: "Tote", Stock: 5, Price: 24})
	require.NoError(t, err)

	updated, err := svc.UpdateStock(context.Background(), domain.UpdateStockRequest{
		ID:    created.ID.String(),
		Stock: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.Stock)

	resp, err := svc.List(context.Background(), domain.ListProductRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, int64(0), resp.Products[0].Stock)
}

func TestUpdateStockValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateStock(context.Background(), domain.UpdateStockRequest{ID: "", Stock: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.UpdateStock(context.Background(), domain.UpdateStockRequest{ID: "not-a-snowflake", Stock: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	created, err := svc.Create(context.Background(), domain.CreateProductRequest{Name: "Tote", Stock: 5, Price: 24})
	require.NoError(t, err)

	_, err = svc.UpdateStock(context.Background(), domain.UpdateStockRequest{ID: created.ID.String(), Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	missing := snowflake.ID(created.ID + 12345)
	_, err = svc.UpdateStock(context.Background(), domain.UpdateStockRequest{ID: missing.String(), Stock: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
