package domain

import (
	"context"
	"errors"
)

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ListUserRequest struct {
	Email string
	Limit int
}

type ListUserFilter struct {
	Email string
}

type ListUserResponse struct {
	Users []User `json:"users"`
}

type Service interface {
	Create(context.Context, CreateUserRequest) (User, error)
	List(context.Context, ListUserRequest) (ListUserResponse, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrNotFound     = errors.New("not_found")
)
