package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID              int64           `db:"product_id"`
	Name            string          `db:"name"`
	UnitPrice       decimal.Decimal `db:"unit_price"`
	Unit            string          `db:"unit"`
	Stock           decimal.Decimal `db:"stock"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID              int64           `db:"order_id"`
	CustomerName    string          `db:"customer_name"`
	CustomerAddress string          `db:"customer_address"`
	OrderDate       time.Time       `db:"order_date"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
}

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
}
