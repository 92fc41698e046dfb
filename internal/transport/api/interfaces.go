package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/groph-vending/internal/domain"
	"github.com/fsdevblog/groph-vending/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	Update(ctx context.Context, userID string, args service.UpdateUserArgs) (*domain.User, error)
	Delete(ctx context.Context, userID string) (*domain.User, error)
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

type ProductServicer interface {
	Create(ctx context.Context, user domain.User, args service.ProductArgs) (*domain.Product, error)
	Update(ctx context.Context, user domain.User, productID string, args service.ProductArgs) (*domain.Product, error)
	Delete(ctx context.Context, user domain.User, productID string) (*domain.Product, error)
	GetByID(ctx context.Context, productID string) (*domain.Product, error)
	GetAll(ctx context.Context) ([]domain.Product, error)
}

type VendingServicer interface {
	Buy(ctx context.Context, user domain.User, productID string, amount int) (*domain.Purchase, error)
	Deposit(ctx context.Context, user domain.User, amount int) (*domain.User, error)
	ResetBalance(ctx context.Context, user domain.User) (*domain.User, error)
}
