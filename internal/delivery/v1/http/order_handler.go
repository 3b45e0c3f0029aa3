package http

import (
	"net/http"
	"time"

	"github.com/DRSN-tech/grocery-backend/internal/domain"
	"github.com/DRSN-tech/grocery-backend/internal/usecase"
	"github.com/DRSN-tech/grocery-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	orderUC usecase.OrderUC
	logger  logger.Logger
}

func NewOrderHandler(orderUC usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUC: orderUC, logger: logger}
}

type placeOrderRequest struct {
	CustomerName    string             `json:"customer_name"`
	CustomerAddress string             `json:"customer_address"`
	Items           []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type placeOrderResponse struct {
	OrderID int64           `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}

type orderResponse struct {
	OrderID         int64           `json:"order_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerAddress string          `json:"customer_address"`
	OrderDate       time.Time       `json:"order_date"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

type orderDetailResponse struct {
	ProductName     string          `json:"product_name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Unit            string          `json:"unit"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Quantity        decimal.Decimal `json:"quantity"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		OrderID:         o.ID,
		CustomerName:    o.CustomerName,
		CustomerAddress: o.CustomerAddress,
		OrderDate:       o.OrderDate,
		TotalAmount:     o.TotalAmount,
	}
}

// placeOrder оформляет заказ. Позиции с нулевым или отрицательным
// количеством отбрасываются здесь, до вызова ядра: это контракт
// вызывающего слоя.
func (o *OrderHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	items := make([]domain.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		if !item.Quantity.IsPositive() {
			continue
		}
		items = append(items, domain.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	res, err := o.orderUC.PlaceOrder(r.Context(), usecase.NewPlaceOrderReq(
		req.CustomerName, req.CustomerAddress, items,
	))
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, placeOrderResponse{
		OrderID: res.OrderID,
		Total:   res.Total,
	})
}

func (o *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := o.orderUC.ListOrders(r.Context())
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	result := make([]orderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, toOrderResponse(&orders[i]))
	}

	WriteSuccess(w, http.StatusOK, result)
}

func (o *OrderHandler) details(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	order, details, err := o.orderUC.GetOrderDetail(r.Context(), id)
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	detailsRes := make([]orderDetailResponse, 0, len(details))
	for _, d := range details {
		detailsRes = append(detailsRes, orderDetailResponse{
			ProductName:     d.ProductName,
			UnitPrice:       d.UnitPrice,
			Unit:            d.Unit,
			DiscountPercent: d.DiscountPercent,
			Quantity:        d.Quantity,
		})
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"order":   toOrderResponse(order),
		"details": detailsRes,
	})
}
