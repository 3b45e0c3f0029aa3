package domain

import "github.com/shopspring/decimal"

// Product описывает товар каталога.
// Инварианты: Stock >= 0, 0 <= DiscountPercent <= 100.
type Product struct {
	ID              int64
	Name            string
	UnitPrice       decimal.Decimal
	Unit            string // единица измерения для отображения ("kg", "pcs")
	Stock           decimal.Decimal
	DiscountPercent decimal.Decimal
}

func NewProduct(name string, unitPrice decimal.Decimal, unit string, stock, discountPercent decimal.Decimal) *Product {
	return &Product{
		Name:            name,
		UnitPrice:       unitPrice,
		Unit:            unit,
		Stock:           stock,
		DiscountPercent: discountPercent,
	}
}

// DiscountedPrice возвращает цену за единицу с учётом скидки.
func (p *Product) DiscountedPrice() decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(p.DiscountPercent.Div(decimal.NewFromInt(100)))
	return p.UnitPrice.Mul(factor)
}
