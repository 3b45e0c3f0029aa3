package usecase

import (
	"context"

	"github.com/DRSN-tech/grocery-backend/internal/domain"
	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	// GetForUpdate читает товар с блокировкой строки внутри текущей транзакции.
	GetForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	// DecrementStock атомарно списывает остаток внутри текущей транзакции.
	// Возвращает InsufficientStockError, если списывать нечего; остаток при
	// этом не меняется.
	DecrementStock(ctx context.Context, id int64, quantity decimal.Decimal) (*domain.Product, error)
}

type OrderRepository interface {
	CreateHeader(ctx context.Context, order *domain.Order) (*domain.Order, error)
	CreateLine(ctx context.Context, line *domain.OrderLine) error
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetDetails(ctx context.Context, orderID int64) ([]OrderDetail, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type SessionRepository interface {
	Set(ctx context.Context, token string, userID int64) error
	Get(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}
