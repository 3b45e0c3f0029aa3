package usecase

import (
	"context"

	"github.com/DRSN-tech/grocery-backend/internal/domain"
)

type CatalogUC interface {
	CreateProduct(ctx context.Context, fields *ProductFields) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, fields *ProductFields) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type OrderUC interface {
	PlaceOrder(ctx context.Context, req *PlaceOrderReq) (*PlaceOrderRes, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrderDetail(ctx context.Context, orderID int64) (*domain.Order, []OrderDetail, error)
}

type AuthUC interface {
	Register(ctx context.Context, req *RegisterReq) (*LoginRes, error)
	Login(ctx context.Context, req *LoginReq) (*LoginRes, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	SeedDefaultUsers(ctx context.Context) error
}
