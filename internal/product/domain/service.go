package domain

import (
	"context"
	"errors"
)

type CreateProductRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Stock    int64   `json:"stock"`
	Price    float64 `json:"price"`
}

type UpdateStockRequest struct {
	ID    string `json:"-"`
	Stock int64  `json:"stock"`
}

type ListProductRequest struct {
	Category string
	Limit    int
}

type ListProductFilter struct {
	Category string
}

type ListProductResponse struct {
	Products []Product `json:"products"`
}

type Service interface {
	Create(context.Context, CreateProductRequest) (Product, error)
	List(context.Context, ListProductRequest) (ListProductResponse, error)
	UpdateStock(context.Context, UpdateStockRequest) (Product, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidStock = errors.New("invalid_stock")
	ErrInvalidPrice = errors.New("invalid_price")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
