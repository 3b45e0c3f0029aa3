package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/grocery-backend/internal/domain"
	"github.com/DRSN-tech/grocery-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/grocery-backend/pkg/e"
	"github.com/DRSN-tech/grocery-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
// Чтения выполняются через пул; мутации и блокирующие чтения требуют
// транзакцию в контексте.
type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

const productColumns = "product_id, name, unit_price, unit, stock, discount_percent"

// Create сохраняет новый товар и возвращает его с присвоенным идентификатором.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (name, unit_price, unit, stock, discount_percent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + productColumns

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query,
		product.Name, product.UnitPrice, product.Unit, product.Stock, product.DiscountPercent,
	).Scan(
		&model.ID, &model.Name, &model.UnitPrice, &model.Unit, &model.Stock, &model.DiscountPercent,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return converter.ToProductEntity(&model), nil
}

// Update полностью заменяет изменяемые поля товара.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET name = $2, unit_price = $3, unit = $4, stock = $5, discount_percent = $6
		WHERE product_id = $1
		RETURNING ` + productColumns

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query,
		product.ID, product.Name, product.UnitPrice, product.Unit, product.Stock, product.DiscountPercent,
	).Scan(
		&model.ID, &model.Name, &model.UnitPrice, &model.Unit, &model.Stock, &model.DiscountPercent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return converter.ToProductEntity(&model), nil
}

// Delete удаляет товар. Отсутствующий идентификатор не считается ошибкой.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, id); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetByID возвращает товар по идентификатору.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`

	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.UnitPrice, &model.Unit, &model.Stock, &model.DiscountPercent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return converter.ToProductEntity(&model), nil
}

// List возвращает весь каталог.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY product_id`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.UnitPrice, &model.Unit, &model.Stock, &model.DiscountPercent,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *converter.ToProductEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// GetForUpdate читает товар с блокировкой строки (SELECT ... FOR UPDATE),
// чтобы последовательность проверка-списание была сериализуемой относительно
// конкурентных писателей того же товара.
func (p *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1 FOR UPDATE`

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.UnitPrice, &model.Unit, &model.Stock, &model.DiscountPercent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return converter.ToProductEntity(&model), nil
}

// DecrementStock списывает остаток внутри текущей транзакции.
// При нехватке остатка возвращает InsufficientStockError с доступным и
// запрошенным количеством, не меняя остаток.
func (p *ProductRepo) DecrementStock(ctx context.Context, id int64, quantity decimal.Decimal) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var stock decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT stock FROM products WHERE product_id = $1 FOR UPDATE`, id).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if quantity.GreaterThan(stock) {
		return nil, e.Wrap(whereami.WhereAmI(), &e.InsufficientStockError{
			ProductID: id,
			Available: stock,
			Requested: quantity,
		})
	}

	query := `
		UPDATE products
		SET stock = stock - $2
		WHERE product_id = $1
		RETURNING ` + productColumns

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query, id, quantity).Scan(
		&model.ID, &model.Name, &model.UnitPrice, &model.Unit, &model.Stock, &model.DiscountPercent,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return converter.ToProductEntity(&model), nil
}
