package handler

import (
	"emi-calculator/internal/api/handler/dto"
	"emi-calculator/internal/domain/product"
	"emi-calculator/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	service product.ProductService
	logger  *slog.Logger
}

func NewProductHandler(s product.ProductService, l *slog.Logger) *ProductHandler {
	if s == nil {
		panic("product service cannot be nil")
	}
	return &ProductHandler{
		service: s,
		logger:  l.With("component", "ProductHandler"),
	}
}

func getProductCodeFromURL(r *http.Request) (string, error) {
	code := product.NormalizeCode(chi.URLParam(r, "code"))
	if code == "" {
		return "", fmt.Errorf("%w: product code not found in URL path", apperrors.ErrInvalidArgument)
	}
	return code, nil
}

// ListProducts returns the loan product rate card.
//
// @Summary List loan products
// @Tags Products
// @Produce json
// @Success 200 {array} dto.ProductResponse "Loan products ordered by code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewProductListResponse(products))
}

// GetProduct returns one loan product.
//
// @Summary Get a loan product
// @Tags Products
// @Produce json
// @Param code path string true "Product code"
// @Success 200 {object} dto.ProductResponse "Loan product"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/products/{code} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	code, err := getProductCodeFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	p, err := h.service.GetProduct(r.Context(), code)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewProductResponse(p))
}

// UpsertProduct creates or replaces a loan product.
//
// @Summary Create or update a loan product
// @Tags Products
// @Accept json
// @Produce json
// @Param code path string true "Product code"
// @Param request body dto.UpsertProductRequest true "Product fields"
// @Success 200 {object} dto.ProductResponse "Saved product"
// @Failure 400 {object} dto.ErrorResponse "Invalid product"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/products/{code} [put]
// @Security BearerAuth
func (h *ProductHandler) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	code, err := getProductCodeFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.UpsertProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed request body: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	saved, err := h.service.SaveProduct(r.Context(), req.ToProduct(code))
	if err != nil {
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Product upserted", "code", saved.Code)
	respondJSON(w, http.StatusOK, dto.NewProductResponse(saved))
}
