package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/grocery-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture(t *testing.T) (*CatalogUseCase, *productRepoStub, *fakeTx) {
	t.Helper()
	tx := &fakeTx{}
	productRepo := newProductRepoStub()
	uc := NewCatalogUC(productRepo, &fakeDB{tx: tx}, nopLogger{})
	return uc, productRepo, tx
}

func validFields() *ProductFields {
	return &ProductFields{
		Name:            "Apples",
		UnitPrice:       dec("10.00"),
		Unit:            "kg",
		Stock:           dec("20"),
		DiscountPercent: dec("10"),
	}
}

func TestCreateProduct_Success(t *testing.T) {
	uc, productRepo, tx := newCatalogFixture(t)

	product, err := uc.CreateProduct(context.Background(), validFields())
	require.NoError(t, err)
	require.NotNil(t, product)

	assert.Equal(t, "Apples", product.Name)
	assert.True(t, product.UnitPrice.Equal(dec("10.00")))
	assert.True(t, product.Stock.Equal(dec("20")))
	assert.Len(t, productRepo.products, 1)
	assert.True(t, tx.committed)
}

func TestCreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *ProductFields)
		wantField string
	}{
		{
			name:      "empty name",
			mutate:    func(f *ProductFields) { f.Name = "  " },
			wantField: "name",
		},
		{
			name:      "empty unit",
			mutate:    func(f *ProductFields) { f.Unit = "" },
			wantField: "unit",
		},
		{
			name:      "negative price",
			mutate:    func(f *ProductFields) { f.UnitPrice = dec("-1") },
			wantField: "unit_price",
		},
		{
			name:      "negative stock",
			mutate:    func(f *ProductFields) { f.Stock = dec("-0.5") },
			wantField: "stock",
		},
		{
			name:      "negative discount",
			mutate:    func(f *ProductFields) { f.DiscountPercent = dec("-1") },
			wantField: "discount_percent",
		},
		{
			name:      "discount above 100",
			mutate:    func(f *ProductFields) { f.DiscountPercent = dec("100.01") },
			wantField: "discount_percent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, productRepo, tx := newCatalogFixture(t)

			fields := validFields()
			tt.mutate(fields)

			_, err := uc.CreateProduct(context.Background(), fields)
			require.Error(t, err)

			var vErr *e.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)

			assert.Empty(t, productRepo.products)
			assert.False(t, tx.committed)
		})
	}
}

func TestCreateProduct_BoundaryDiscounts(t *testing.T) {
	uc, _, _ := newCatalogFixture(t)

	for _, discount := range []string{"0", "100"} {
		fields := validFields()
		fields.DiscountPercent = dec(discount)

		_, err := uc.CreateProduct(context.Background(), fields)
		assert.NoError(t, err, "discount %s", discount)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	uc, _, tx := newCatalogFixture(t)

	_, err := uc.UpdateProduct(context.Background(), 42, validFields())
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrNotFound)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestUpdateProduct_Success(t *testing.T) {
	uc, productRepo, tx := newCatalogFixture(t)
	productRepo.products[1] = appleProduct()

	fields := validFields()
	fields.Name = "Green apples"
	fields.UnitPrice = dec("12.50")

	updated, err := uc.UpdateProduct(context.Background(), 1, fields)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "Green apples", updated.Name)
	assert.True(t, updated.UnitPrice.Equal(dec("12.50")))
	assert.True(t, tx.committed)
}

// Удаление несуществующего товара проходит без ошибки.
func TestDeleteProduct_AbsentIsSilent(t *testing.T) {
	uc, _, tx := newCatalogFixture(t)

	err := uc.DeleteProduct(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, tx.committed)
}

func TestGetProduct_NotFound(t *testing.T) {
	uc, _, _ := newCatalogFixture(t)

	_, err := uc.GetProduct(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestListProducts_Empty(t *testing.T) {
	uc, _, _ := newCatalogFixture(t)

	products, err := uc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}
