package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DRSN-tech/grocery-backend/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"validation", &e.ValidationError{Field: "name", Reason: "is required"}, http.StatusBadRequest},
		{"product not found", &e.ProductNotFoundError{ProductID: 42}, http.StatusBadRequest},
		{"empty order", e.ErrEmptyOrder, http.StatusBadRequest},
		{"bad request", e.ErrStatusBadRequest, http.StatusBadRequest},
		{"invalid credentials", e.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", e.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", e.ErrForbidden, http.StatusForbidden},
		{"not found", e.ErrNotFound, http.StatusNotFound},
		{"username taken", e.ErrUsernameTaken, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := ToHTTPResponse(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

// Обёртки usecase-слоя не должны менять отображение в статусы.
func TestToHTTPResponse_WrappedError(t *testing.T) {
	err := e.Wrap("OrderUseCase.PlaceOrder", e.ErrEmptyOrder)

	code, _ := ToHTTPResponse(err)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestToHTTPResponse_InsufficientStockDetails(t *testing.T) {
	err := e.Wrap("OrderUseCase.PlaceOrder", &e.InsufficientStockError{
		ProductID: 7,
		Available: decimal.RequireFromString("2"),
		Requested: decimal.RequireFromString("3"),
	})

	code, resp := ToHTTPResponse(err)
	assert.Equal(t, http.StatusConflict, code)

	require.NotNil(t, resp.Details)
	assert.Equal(t, int64(7), resp.Details["product_id"])
}

// Внутренности неизвестных ошибок не просачиваются в ответ.
func TestToHTTPResponse_HidesInternalDetails(t *testing.T) {
	err := errors.New("pq: connection refused")

	_, resp := ToHTTPResponse(err)
	assert.NotContains(t, resp.Message, "pq:")
}
