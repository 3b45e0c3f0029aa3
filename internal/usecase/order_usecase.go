package usecase

import (
	"context"
	"errors"

	"github.com/DRSN-tech/grocery-backend/internal/domain"
	"github.com/DRSN-tech/grocery-backend/pkg/e"
	"github.com/DRSN-tech/grocery-backend/pkg/logger"
	"github.com/DRSN-tech/grocery-backend/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OrderUseCase реализует оформление заказов и чтение их истории.
type OrderUseCase struct {
	productRepo ProductRepository
	orderRepo   OrderRepository
	db          transaction.Transactional
	logger      logger.Logger
}

func NewOrderUC(
	productRepo ProductRepository,
	orderRepo OrderRepository,
	db transaction.Transactional,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		db:          db,
		logger:      logger,
	}
}

// PlaceOrder превращает корзину покупателя в сохранённый заказ либо отклоняет
// её без побочных эффектов. Проверка строк, списание остатков и запись
// заголовка со строками выполняются в одной транзакции: любая ошибка на любом
// шаге откатывает всё.
//
// Строки обрабатываются строго в порядке запроса. Дубликаты товара не
// объединяются: каждая строка — отдельное списание, и следующая строка видит
// остаток уже с учётом списаний предыдущих строк этой же транзакции.
func (o *OrderUseCase) PlaceOrder(ctx context.Context, req *PlaceOrderReq) (res *PlaceOrderRes, err error) {
	const op = "OrderUseCase.PlaceOrder"

	if len(req.Items) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyOrder)
	}

	for _, item := range req.Items {
		if !item.Quantity.IsPositive() {
			return nil, e.Wrap(op, &e.ValidationError{Field: "quantity", Reason: "must be positive"})
		}
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.db)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, tr.CtxKey, tx.Transaction())

	total := decimal.Zero
	lines := make([]domain.OrderLine, 0, len(req.Items))

	for _, item := range req.Items {
		var product *domain.Product
		product, err = o.productRepo.GetForUpdate(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, e.ErrNotFound) {
				err = &e.ProductNotFoundError{ProductID: item.ProductID}
			}
			return nil, e.Wrap(op, err)
		}

		if _, err = o.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, e.Wrap(op, err)
		}

		total = total.Add(product.DiscountedPrice().Mul(item.Quantity))
		lines = append(lines, domain.OrderLine{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			UnitPrice:       product.UnitPrice,
			DiscountPercent: product.DiscountPercent,
		})
	}

	// Итог округляется до точности валюты только после суммирования строк.
	total = total.Round(2)

	var order *domain.Order
	order, err = o.orderRepo.CreateHeader(ctx, domain.NewOrder(req.CustomerName, req.CustomerAddress, total))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	for i := range lines {
		lines[i].OrderID = order.ID
		if err = o.orderRepo.CreateLine(ctx, &lines[i]); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	o.logger.Infof("order %d placed: %d line(s), total %s", order.ID, len(lines), total.String())

	return NewPlaceOrderRes(order.ID, total), nil
}

// ListOrders возвращает заголовки всех заказов.
func (o *OrderUseCase) ListOrders(ctx context.Context) ([]domain.Order, error) {
	const op = "OrderUseCase.ListOrders"

	orders, err := o.orderRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}

// GetOrderDetail возвращает заказ и его строки для отображения.
// Строки удалённых товаров выпадают из выборки; пустой список строк при
// существующем заказе — не ошибка.
func (o *OrderUseCase) GetOrderDetail(ctx context.Context, orderID int64) (*domain.Order, []OrderDetail, error) {
	const op = "OrderUseCase.GetOrderDetail"

	order, err := o.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, e.Wrap(op, err)
	}

	details, err := o.orderRepo.GetDetails(ctx, orderID)
	if err != nil {
		return nil, nil, e.Wrap(op, err)
	}

	return order, details, nil
}
