package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/grocery-backend/internal/domain"
	"github.com/DRSN-tech/grocery-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/grocery-backend/internal/usecase"
	"github.com/DRSN-tech/grocery-backend/pkg/e"
	"github.com/DRSN-tech/grocery-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
// Заказы только создаются и читаются: пути обновления или удаления нет.
type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// CreateHeader вставляет заголовок заказа внутри текущей транзакции
// и возвращает его с присвоенным идентификатором и датой.
func (o *OrderRepo) CreateHeader(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO orders (customer_name, customer_address, order_date, total_amount)
		VALUES ($1, $2, NOW(), $3)
		RETURNING order_id, customer_name, customer_address, order_date, total_amount
	`

	var model converter.OrderModel
	err = tx.QueryRow(ctx, query, order.CustomerName, order.CustomerAddress, order.TotalAmount).Scan(
		&model.ID, &model.CustomerName, &model.CustomerAddress, &model.OrderDate, &model.TotalAmount,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return converter.ToOrderEntity(&model), nil
}

// CreateLine вставляет строку заказа внутри текущей транзакции.
func (o *OrderRepo) CreateLine(ctx context.Context, line *domain.OrderLine) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO order_details (order_id, product_id, quantity, unit_price, discount_percent)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = tx.Exec(ctx, query,
		line.OrderID, line.ProductID, line.Quantity, line.UnitPrice, line.DiscountPercent,
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// List возвращает заголовки всех заказов.
func (o *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT order_id, customer_name, customer_address, order_date, total_amount
		FROM orders
		ORDER BY order_id
	`

	rows, err := o.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Order, 0)
	for rows.Next() {
		var model converter.OrderModel
		if err := rows.Scan(
			&model.ID, &model.CustomerName, &model.CustomerAddress, &model.OrderDate, &model.TotalAmount,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *converter.ToOrderEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// GetByID возвращает заголовок заказа.
func (o *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT order_id, customer_name, customer_address, order_date, total_amount
		FROM orders
		WHERE order_id = $1
	`

	var model converter.OrderModel
	err := o.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.CustomerName, &model.CustomerAddress, &model.OrderDate, &model.TotalAmount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return converter.ToOrderEntity(&model), nil
}

// GetDetails возвращает строки заказа для отображения. Название и единица
// измерения берутся из текущего каталога, цена и скидка — зафиксированные
// в строке заказа; строки удалённых товаров в выборку не попадают.
func (o *OrderRepo) GetDetails(ctx context.Context, orderID int64) ([]usecase.OrderDetail, error) {
	query := `
		SELECT p.name, od.unit_price, p.unit, od.discount_percent, od.quantity
		FROM order_details od
		JOIN products p ON od.product_id = p.product_id
		WHERE od.order_id = $1
		ORDER BY od.id
	`

	rows, err := o.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.OrderDetail, 0)
	for rows.Next() {
		var detail usecase.OrderDetail
		if err := rows.Scan(
			&detail.ProductName, &detail.UnitPrice, &detail.Unit, &detail.DiscountPercent, &detail.Quantity,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
