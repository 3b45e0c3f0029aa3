package e

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 400 Bad Request
	ErrEmptyOrder       = fmt.Errorf("order must contain at least one item")
	ErrStatusBadRequest = fmt.Errorf("bad request")

	// 401 / 403
	ErrUnauthorized       = fmt.Errorf("authentication required")
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrForbidden          = fmt.Errorf("forbidden")

	// 404 Not Found
	ErrNotFound = fmt.Errorf("not found")

	// 409 Conflict
	ErrUsernameTaken = fmt.Errorf("username already exists")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// ValidationError — поле запроса вне допустимого домена.
type ValidationError struct {
	Field  string
	Reason string
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", v.Field, v.Reason)
}

// ProductNotFoundError — строка корзины ссылается на несуществующий продукт.
type ProductNotFoundError struct {
	ProductID int64
}

func (p *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", p.ProductID)
}

// InsufficientStockError — запрошенное количество превышает доступный остаток.
// Available и Requested сохраняются для пользовательского сообщения.
type InsufficientStockError struct {
	ProductID int64
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (i *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for product %d: available %s, requested %s",
		i.ProductID, i.Available.String(), i.Requested.String(),
	)
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
