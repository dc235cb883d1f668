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
	"github.com/smallbiznis/compass/internal/user/domain"
	"github.com/smallbiznis/compass/internal/user/repository"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return &Service{
		db:    db,
		log:   zap.NewNop(),
		genID: node,
		clock: clock.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
		repo:  repository.Provide(),
	}
}

func TestCreateUser(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Name:  " Ava Chen ",
		Email: "ava@example.com",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "Ava Chen", user.Name)
	assert.Equal(t, "ava@example.com", user.Email)

	resp, err := svc.List(context.Background(), domain.ListUserRequest{Email: "ava@example.com"})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	assert.Equal(t, user.ID, resp.Users[0].ID)
}

func TestCreateUserValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateUserRequest{Name: "", Email: "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(context.Background(), domain.CreateUserRequest{Name: "X", Email: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Create(context.Background(), domain.CreateUserRequest{Name: "X", Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestListUsersClampsLimit(t *testing.T) {
	svc := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), domain.CreateUserRequest{
			Name:  "User",
			Email: string(rune('a'+i)) + "@example.com",
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), domain.ListUserRequest{Limit: -1})
	require.NoError(t, err)
	assert.Len(t, resp.Users, 3)

	resp, err = svc.List(context.Background(), domain.ListUserRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Users, 2)
}
