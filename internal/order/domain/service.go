package domain

import (
	"context"
	"errors"
	"time"
)

type CreateOrderRequest struct {
	UserID      string     `json:"user_id"`
	TotalAmount float64    `json:"total_amount"`
	OrderedAt   *time.Time `json:"ordered_at,omitempty"`
}

type ListOrderRequest struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
}

type ListOrderFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
}

type ListOrderResponse struct {
	Orders []Order `json:"orders"`
}

type Service interface {
	Create(context.Context, CreateOrderRequest) (Order, error)
	List(context.Context, ListOrderRequest) (ListOrderResponse, error)
}

var (
	ErrInvalidUser   = errors.New("invalid_user")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrUserNotFound  = errors.New("user_not_found")
)
