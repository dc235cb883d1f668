package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/compass/internal/clock"
	"github.com/smallbiznis/compass/internal/product/domain"
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
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}
	if req.Stock < 0 {
		return domain.Product{}, domain.ErrInvalidStock
	}
	if req.Price < 0 {
		return domain.Product{}, domain.ErrInvalidPrice
	}

	now := s.clock.Now()
	product := domain.Product{
		ID:        s.genID.Generate(),
		Name:      name,
		Category:  strings.TrimSpace(req.Category),
		Stock:     req.Stock,
		Price:     req.Price,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func (s *Service) List(ctx context.Context, req domain.ListProductRequest) (domain.ListProductResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	items, err := s.repo.List(ctx, s.db, domain.ListProductFilter{
		Category: strings.TrimSpace(req.Category),
	}, limit)
	if err != nil {
		return domain.ListProductResponse{}, err
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		products = append(products, *item)
	}

	return domain.ListProductResponse{Products: products}, nil
}

func (s *Service) UpdateStock(ctx context.Context, req domain.UpdateStockRequest) (domain.Product, error) {
	rawID := strings.TrimSpace(req.ID)
	if rawID == "" {
		return domain.Product{}, domain.ErrInvalidID
	}
	id, err := snowflake.ParseString(rawID)
	if err != nil {
		return domain.Product{}, domain.ErrInvalidID
	}
	if req.Stock < 0 {
		return domain.Product{}, domain.ErrInvalidStock
	}

	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Product{}, err
	}
	if product == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	if err := s.repo.UpdateStock(ctx, s.db, id, req.Stock); err != nil {
		return domain.Product{}, err
	}

	product.Stock = req.Stock
	return *product, nil
}
