package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DRSN-tech/grocery-backend/internal/domain"
	"github.com/DRSN-tech/grocery-backend/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogUCStub struct {
	created *usecase.ProductFields
}

func (s *catalogUCStub) CreateProduct(_ context.Context, fields *usecase.ProductFields) (*domain.Product, error) {
	s.created = fields
	return &domain.Product{
		ID:              1,
		Name:            fields.Name,
		UnitPrice:       fields.UnitPrice,
		Unit:            fields.Unit,
		Stock:           fields.Stock,
		DiscountPercent: fields.DiscountPercent,
	}, nil
}

func (s *catalogUCStub) UpdateProduct(_ context.Context, id int64, fields *usecase.ProductFields) (*domain.Product, error) {
	return &domain.Product{ID: id, Name: fields.Name}, nil
}

func (s *catalogUCStub) DeleteProduct(context.Context, int64) error { return nil }

func (s *catalogUCStub) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	return &domain.Product{ID: id, Name: "Apples"}, nil
}

func (s *catalogUCStub) ListProducts(context.Context) ([]domain.Product, error) {
	return nil, nil
}

type orderUCStub struct {
	placed *usecase.PlaceOrderReq
}

func (s *orderUCStub) PlaceOrder(_ context.Context, req *usecase.PlaceOrderReq) (*usecase.PlaceOrderRes, error) {
	s.placed = req
	return usecase.NewPlaceOrderRes(1, decimal.RequireFromString("28.00")), nil
}

func (s *orderUCStub) ListOrders(context.Context) ([]domain.Order, error) { return nil, nil }

func (s *orderUCStub) GetOrderDetail(_ context.Context, orderID int64) (*domain.Order, []usecase.OrderDetail, error) {
	return &domain.Order{ID: orderID}, nil, nil
}

type routerFixture struct {
	srv     *httptest.Server
	auth    *authUCStub
	catalog *catalogUCStub
	orders  *orderUCStub
}

func newRouterFixture(t *testing.T, role domain.Role) *routerFixture {
	t.Helper()

	f := &routerFixture{
		auth:    newAuthStub(role),
		catalog: &catalogUCStub{},
		orders:  &orderUCStub{},
	}

	mux := chi.NewRouter()
	NewRouter(mux, nopLogger{}).Init(f.catalog, f.orders, f.auth)

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, f.srv.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_PlaceOrder(t *testing.T) {
	f := newRouterFixture(t, domain.RoleCustomer)

	resp := f.do(t, http.MethodPost, "/api/v1/orders/", "valid-token", map[string]any{
		"customer_name":    "Alice",
		"customer_address": "Main st. 1",
		"items": []map[string]any{
			{"product_id": 1, "quantity": "2"},
			{"product_id": 2, "quantity": "0"},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body placeOrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(1), body.OrderID)
	assert.True(t, body.Total.Equal(decimal.RequireFromString("28.00")))

	// Нулевые количества отбрасываются до ядра.
	require.NotNil(t, f.orders.placed)
	require.Len(t, f.orders.placed.Items, 1)
	assert.Equal(t, int64(1), f.orders.placed.Items[0].ProductID)
}

func TestRouter_PlaceOrderRequiresCustomerRole(t *testing.T) {
	f := newRouterFixture(t, domain.RoleAdmin)

	resp := f.do(t, http.MethodPost, "/api/v1/orders/", "valid-token", map[string]any{
		"customer_name": "Alice",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Nil(t, f.orders.placed)
}

func TestRouter_CreateProductRequiresAdmin(t *testing.T) {
	product := map[string]any{
		"name":             "Apples",
		"unit_price":       "10.00",
		"unit":             "kg",
		"stock":            "20",
		"discount_percent": "10",
	}

	t.Run("admin", func(t *testing.T) {
		f := newRouterFixture(t, domain.RoleAdmin)

		resp := f.do(t, http.MethodPost, "/api/v1/products/", "valid-token", product)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NotNil(t, f.catalog.created)
		assert.Equal(t, "Apples", f.catalog.created.Name)
	})

	t.Run("customer", func(t *testing.T) {
		f := newRouterFixture(t, domain.RoleCustomer)

		resp := f.do(t, http.MethodPost, "/api/v1/products/", "valid-token", product)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Nil(t, f.catalog.created)
	})
}

func TestRouter_UnauthenticatedRejected(t *testing.T) {
	f := newRouterFixture(t, domain.RoleCustomer)

	for _, path := range []string{"/api/v1/products/", "/api/v1/orders/"} {
		resp := f.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestRouter_OrderDetails(t *testing.T) {
	f := newRouterFixture(t, domain.RoleCustomer)

	resp := f.do(t, http.MethodGet, "/api/v1/orders/7/details", "valid-token", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Order   orderResponse         `json:"order"`
		Details []orderDetailResponse `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(7), body.Order.OrderID)
	assert.Empty(t, body.Details)
}

func TestRouter_BadOrderID(t *testing.T) {
	f := newRouterFixture(t, domain.RoleCustomer)

	resp := f.do(t, http.MethodGet, "/api/v1/orders/abc/details", "valid-token", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
