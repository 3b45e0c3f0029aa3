package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order — заголовок заказа. Создаётся атомарно вместе со строками
// и после этого не изменяется.
type Order struct {
	ID              int64
	CustomerName    string
	CustomerAddress string
	OrderDate       time.Time
	TotalAmount     decimal.Decimal
}

func NewOrder(customerName, customerAddress string, totalAmount decimal.Decimal) *Order {
	return &Order{
		CustomerName:    customerName,
		CustomerAddress: customerAddress,
		TotalAmount:     totalAmount,
	}
}

// OrderLine — строка заказа. Принадлежит ровно одному заказу.
// Цена и скидка фиксируются на момент оформления, чтобы история заказа
// не менялась при последующем редактировании товара.
type OrderLine struct {
	ID              int64
	OrderID         int64
	ProductID       int64
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
}

// CartItem — запрошенная покупателем позиция корзины.
type CartItem struct {
	ProductID int64
	Quantity  decimal.Decimal
}
