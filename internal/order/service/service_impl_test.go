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
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smallbiznis/compass/internal/clock"
	"github.com/smallbiznis/compass/internal/order/domain"
	"github.com/smallbiznis/compass/internal/order/repository"
	userdomain "github.com/smallbiznis/compass/internal/user/domain"
	userrepository "github.com/smallbiznis/compass/internal/user/repository"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&userdomain.User{}, &domain.Order{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	svc := &Service{
		db:       db,
		log:      zap.NewNop(),
		genID:    node,
		clock:    clk,
		repo:     repository.Provide(),
		userRepo: userrepository.Provide(),
	}
	return svc, db, node, clk
}

func seedUser(t *testing.T, db *gorm.DB, node *snowflake.Node) userdomain.User {
	t.Helper()
	user := userdomain.User{
		ID:          node.Generate(),
		Email:       "buyer@example.com",
		Name:        "Buyer",
		LastLoginAt: time.Now().UTC(),
		Metadata:    datatypes.JSONMap{},
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestCreateOrder(t *testing.T) {
	svc, db, node, clk := newTestService(t)
	user := seedUser(t, db, node)

	order, err := svc.Create(context.Background(), domain.CreateOrderRequest{
		UserID:      user.ID.String(),
		TotalAmount: 99.50,
	})
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, "completed", order.Status)
	assert.Equal(t, clk.Now(), order.OrderedAt)
}

func TestCreateOrderWithExplicitOrderedAt(t *testing.T) {
	svc, db, node, _ := newTestService(t)
	user := seedUser(t, db, node)

	orderedAt := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	order, err := svc.Create(context.Background(), domain.CreateOrderRequest{
		UserID:      user.ID.String(),
		TotalAmount: 100,
		OrderedAt:   &orderedAt,
	})
	require.NoError(t, err)
	assert.Equal(t, orderedAt, order.OrderedAt)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, db, node, _ := newTestService(t)
	user := seedUser(t, db, node)

	_, err := svc.Create(context.Background(), domain.CreateOrderRequest{UserID: "", TotalAmount: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidUser)

	_, err = svc.Create(context.Background(), domain.CreateOrderRequest{UserID: "nope", TotalAmount: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidUser)

	_, err = svc.Create(context.Background(), domain.CreateOrderRequest{UserID: user.ID.String(), TotalAmount: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	missing := snowflake.ID(user.ID + 999)
	_, err = svc.Create(context.Background(), domain.CreateOrderRequest{UserID: missing.String(), TotalAmount: 10})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListOrdersFilters(t *testing.T) {
	svc, db, node, _ := newTestService(t)
	user := seedUser(t, db, node)

	january := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	february := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	for _, orderedAt := range []time.Time{january, february} {
		at := orderedAt
		_, err := svc.Create(context.Background(), domain.CreateOrderRequest{
			UserID:      user.ID.String(),
			TotalAmount: 100,
			OrderedAt:   &at,
		})
		require.NoError(t, err)
	}

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	resp, err := svc.List(context.Background(), domain.ListOrderRequest{
		UserID: user.ID.String(),
		From:   &from,
	})
	require.NoError(t, err)
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, february.Unix(), resp.Orders[0].OrderedAt.Unix())
}
