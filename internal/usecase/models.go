package usecase

import (
	"github.com/DRSN-tech/grocery-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ORDER USECASE

// PlaceOrderReq — запрос на оформление заказа.
// Items — корзина в порядке, заданном покупателем; нулевые количества
// уже отфильтрованы вызывающим слоем.
type PlaceOrderReq struct {
	CustomerName    string
	CustomerAddress string
	Items           []domain.CartItem
}

func NewPlaceOrderReq(customerName, customerAddress string, items []domain.CartItem) *PlaceOrderReq {
	return &PlaceOrderReq{
		CustomerName:    customerName,
		CustomerAddress: customerAddress,
		Items:           items,
	}
}

// PlaceOrderRes — результат успешно оформленного заказа.
type PlaceOrderRes struct {
	OrderID int64
	Total   decimal.Decimal
}

func NewPlaceOrderRes(orderID int64, total decimal.Decimal) *PlaceOrderRes {
	return &PlaceOrderRes{OrderID: orderID, Total: total}
}

// OrderDetail — строка заказа для отображения: название и единица измерения
// берутся из текущего каталога, цена и скидка — зафиксированные при оформлении.
type OrderDetail struct {
	ProductName     string
	UnitPrice       decimal.Decimal
	Unit            string
	DiscountPercent decimal.Decimal
	Quantity        decimal.Decimal
}

// CATALOG USECASE

// ProductFields — изменяемые поля товара для создания и полного обновления.
type ProductFields struct {
	Name            string
	UnitPrice       decimal.Decimal
	Unit            string
	Stock           decimal.Decimal
	DiscountPercent decimal.Decimal
}

// AUTH USECASE

type RegisterReq struct {
	Username string
	Password string
}

type LoginReq struct {
	Username string
	Password string
}

// LoginRes — сессионный токен и роль вошедшего пользователя.
type LoginRes struct {
	Token string
	Role  domain.Role
}
