package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/compass/internal/clock"
	"github.com/smallbiznis/compass/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.User{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrInvalidEmail
	}

	now := s.clock.Now()
	user := domain.User{
		ID:          s.genID.Generate(),
		Email:       email,
		Name:        name,
		LastLoginAt: now,
		Metadata:    datatypes.JSONMap{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (s *Service) List(ctx context.Context, req domain.ListUserRequest) (domain.ListUserResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	items, err := s.repo.List(ctx, s.db, domain.ListUserFilter{
		Email: strings.TrimSpace(req.Email),
	}, limit)
	if err != nil {
		return domain.ListUserResponse{}, err
	}

	users := make([]domain.User, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		users = append(users, *item)
	}

	return domain.ListUserResponse{Users: users}, nil
}
