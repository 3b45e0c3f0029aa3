package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/DRSN-tech/grocery-backend/pkg/e"
	"github.com/go-chi/chi/v5"
)

type ErrorResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse отображает ошибки ядра в HTTP-статусы.
// Сообщения структурных ошибок отдаются как есть: ядро не форматирует
// презентацию, но несёт достаточно деталей для пользовательского сообщения.
func ToHTTPResponse(err error) (int, *ErrorResponse) {
	var (
		validationErr *e.ValidationError
		notFoundErr   *e.ProductNotFoundError
		stockErr      *e.InsufficientStockError
	)

	switch {
	case errors.As(err, &stockErr):
		resp := NewErrorResponse(http.StatusConflict, stockErr.Error())
		resp.Details = map[string]any{
			"product_id": stockErr.ProductID,
			"available":  stockErr.Available,
			"requested":  stockErr.Requested,
		}
		return http.StatusConflict, resp
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		return http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, notFoundErr.Error())
	case errors.Is(err, e.ErrEmptyOrder):
		return http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, e.ErrEmptyOrder.Error())
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, e.ErrStatusBadRequest.Error())
	case errors.Is(err, e.ErrInvalidCredentials):
		return http.StatusUnauthorized, NewErrorResponse(http.StatusUnauthorized, e.ErrInvalidCredentials.Error())
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, NewErrorResponse(http.StatusUnauthorized, e.ErrUnauthorized.Error())
	case errors.Is(err, e.ErrForbidden):
		return http.StatusForbidden, NewErrorResponse(http.StatusForbidden, e.ErrForbidden.Error())
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, NewErrorResponse(http.StatusNotFound, e.ErrNotFound.Error())
	case errors.Is(err, e.ErrUsernameTaken):
		return http.StatusConflict, NewErrorResponse(http.StatusConflict, e.ErrUsernameTaken.Error())
	default:
		return http.StatusInternalServerError, NewErrorResponse(http.StatusInternalServerError, e.ErrInternalServerError.Error())
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, resp := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeJSON разбирает тело запроса в dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}
	return nil
}

// parseIDParam извлекает числовой идентификатор из пути.
func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, e.Wrap("invalid "+name, e.ErrStatusBadRequest)
	}
	return id, nil
}
