package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/grocery-backend/internal/domain"
	"github.com/DRSN-tech/grocery-backend/pkg/e"
	"github.com/DRSN-tech/grocery-backend/pkg/logger"
	"github.com/DRSN-tech/grocery-backend/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CatalogUseCase реализует административное управление каталогом товаров.
type CatalogUseCase struct {
	productRepo ProductRepository
	db          transaction.Transactional
	logger      logger.Logger
}

func NewCatalogUC(productRepo ProductRepository, db transaction.Transactional, logger logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
		db:          db,
		logger:      logger,
	}
}

// CreateProduct создаёт товар с новым идентификатором.
func (c *CatalogUseCase) CreateProduct(ctx context.Context, fields *ProductFields) (res *domain.Product, err error) {
	const op = "CatalogUseCase.CreateProduct"

	if err = validateProductFields(fields); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.db)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, tr.CtxKey, tx.Transaction())

	product, err := c.productRepo.Create(ctx, domain.NewProduct(
		fields.Name, fields.UnitPrice, fields.Unit, fields.Stock, fields.DiscountPercent,
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// UpdateProduct полностью заменяет изменяемые поля товара.
func (c *CatalogUseCase) UpdateProduct(ctx context.Context, id int64, fields *ProductFields) (res *domain.Product, err error) {
	const op = "CatalogUseCase.UpdateProduct"

	if err = validateProductFields(fields); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.db)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, tr.CtxKey, tx.Transaction())

	product := domain.NewProduct(fields.Name, fields.UnitPrice, fields.Unit, fields.Stock, fields.DiscountPercent)
	product.ID = id

	updated, err := c.productRepo.Update(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// DeleteProduct удаляет товар. Защиты каскадом нет: строки старых заказов,
// ссылающиеся на удалённый товар, перестают попадать в выборку деталей.
func (c *CatalogUseCase) DeleteProduct(ctx context.Context, id int64) (err error) {
	const op = "CatalogUseCase.DeleteProduct"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.db)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, tr.CtxKey, tx.Transaction())

	if err = c.productRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (c *CatalogUseCase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	product, err := c.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

func (c *CatalogUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListProducts"

	products, err := c.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// validateProductFields проверяет доменные инварианты полей товара.
func validateProductFields(fields *ProductFields) error {
	if strings.TrimSpace(fields.Name) == "" {
		return &e.ValidationError{Field: "name", Reason: "is required"}
	}

	if strings.TrimSpace(fields.Unit) == "" {
		return &e.ValidationError{Field: "unit", Reason: "is required"}
	}

	if fields.UnitPrice.IsNegative() {
		return &e.ValidationError{Field: "unit_price", Reason: "must be non-negative"}
	}

	if fields.Stock.IsNegative() {
		return &e.ValidationError{Field: "stock", Reason: "must be non-negative"}
	}

	if fields.DiscountPercent.IsNegative() || fields.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return &e.ValidationError{Field: "discount_percent", Reason: "must be between 0 and 100"}
	}

	return nil
}
