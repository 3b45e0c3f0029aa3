package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount string
		want     string
	}{
		{"no discount", "5.00", "0", "5.00"},
		{"ten percent", "10.00", "10", "9.00"},
		{"full discount", "10.00", "100", "0"},
		{"fractional discount", "3.00", "33.33", "2.0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{
				UnitPrice:       decimal.RequireFromString(tt.price),
				DiscountPercent: decimal.RequireFromString(tt.discount),
			}

			got := p.DiscountedPrice()
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}
