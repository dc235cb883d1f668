package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/compass/internal/clock"
	"github.com/smallbiznis/compass/internal/order/domain"
	userdomain "github.com/smallbiznis/compass/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	UserRepo userdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	userRepo userdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("order.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		userRepo: p.UserRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	rawUserID := strings.TrimSpace(req.UserID)
	if rawUserID == "" {
		return domain.Order{}, domain.ErrInvalidUser
	}
	userID, err := snowflake.ParseString(rawUserID)
	if err != nil {
		return domain.Order{}, domain.ErrInvalidUser
	}
	if req.TotalAmount < 0 {
		return domain.Order{}, domain.ErrInvalidAmount
	}

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return domain.Order{}, err
	}
	if user == nil {
		return domain.Order{}, domain.ErrUserNotFound
	}

	now := s.clock.Now()
	orderedAt := now
	if req.OrderedAt != nil {
		orderedAt = req.OrderedAt.UTC()
	}

	order := domain.Order{
		ID:          s.genID.Generate(),
		UserID:      userID,
		TotalAmount: req.TotalAmount,
		Status:      "completed",
		OrderedAt:   orderedAt,
		Metadata:    datatypes.JSONMap{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &order); err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (s *Service) List(ctx context.Context, req domain.ListOrderRequest) (domain.ListOrderResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	items, err := s.repo.List(ctx, s.db, domain.ListOrderFilter{
		UserID: strings.TrimSpace(req.UserID),
		From:   req.From,
		To:     req.To,
	}, limit)
	if err != nil {
		return domain.ListOrderResponse{}, err
	}

	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orders = append(orders, *item)
	}

	return domain.ListOrderResponse{Orders: orders}, nil
}
