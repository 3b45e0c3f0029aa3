package http

import (
	"net/http"

	"github.com/DRSN-tech/grocery-backend/internal/domain"
	"github.com/DRSN-tech/grocery-backend/internal/usecase"
	"github.com/DRSN-tech/grocery-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewProductHandler(catalogUC usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUC: catalogUC, logger: logger}
}

type productRequest struct {
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Unit            string          `json:"unit"`
	Stock           decimal.Decimal `json:"stock"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

type productResponse struct {
	ProductID       int64           `json:"product_id"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Unit            string          `json:"unit"`
	Stock           decimal.Decimal `json:"stock"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ProductID:       p.ID,
		Name:            p.Name,
		UnitPrice:       p.UnitPrice,
		Unit:            p.Unit,
		Stock:           p.Stock,
		DiscountPercent: p.DiscountPercent,
	}
}

func (p *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := p.catalogUC.ListProducts(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	result := make([]productResponse, 0, len(products))
	for i := range products {
		result = append(result, toProductResponse(&products[i]))
	}

	WriteSuccess(w, http.StatusOK, result)
}

func (p *ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

func (p *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.catalogUC.CreateProduct(r.Context(), &usecase.ProductFields{
		Name:            req.Name,
		UnitPrice:       req.UnitPrice,
		Unit:            req.Unit,
		Stock:           req.Stock,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

func (p *ProductHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.catalogUC.UpdateProduct(r.Context(), id, &usecase.ProductFields{
		Name:            req.Name,
		UnitPrice:       req.UnitPrice,
		Unit:            req.Unit,
		Stock:           req.Stock,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

func (p *ProductHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{})
}
