package handler

import (
	"context"
	"emi-calculator/internal/api/handler/dto"
	"emi-calculator/internal/domain/emi"
	"emi-calculator/internal/domain/product"
	"emi-calculator/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

type EMIHandler struct {
	calculator emi.CalculatorService
	products   product.ProductService
	logger     *slog.Logger
}

func NewEMIHandler(calc emi.CalculatorService, products product.ProductService, l *slog.Logger) *EMIHandler {
	if calc == nil {
		panic("calculator service cannot be nil")
	}
	if products == nil {
		panic("product service cannot be nil")
	}
	return &EMIHandler{
		calculator: calc,
		products:   products,
		logger:     l.With("component", "EMIHandler"),
	}
}

// CalculateEMI computes the installment figures for a loan.
//
// @Summary Calculate EMI
// @Description Computes the monthly installment, total interest, total amount and interest saved by a prepayment. Amounts may be JSON numbers or numeric strings. When productCode is given, the product's rate and tenure fill in any value not supplied.
// @Tags EMI
// @Accept json
// @Produce json
// @Param request body dto.CalculateEMIRequest true "Loan parameters"
// @Success 200 {object} dto.EMIResponse "Calculated figures"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/emi [post]
func (h *EMIHandler) CalculateEMI(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateEMIRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Malformed calculation request", "error", err)
		respondError(w, fmt.Errorf("%w: malformed request body: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	h.calculate(w, r, req.ToLoanInput(), req.Supplied(), req.ProductCode)
}

// CalculateEMIFromQuery computes the installment figures from query parameters.
//
// @Summary Calculate EMI from query parameters
// @Tags EMI
// @Produce json
// @Param principal query string true "Loan amount" example(100000)
// @Param annualRatePercent query string false "Annual interest rate in percent" example(10)
// @Param tenureYears query string false "Tenure in years" example(1)
// @Param prepayment query string false "Prepayment amount"
// @Param productCode query string false "Loan product supplying rate and tenure"
// @Success 200 {object} dto.EMIResponse "Calculated figures"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/emi [get]
func (h *EMIHandler) CalculateEMIFromQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fields := dto.LoanFields{
		Principal:         q.Get("principal"),
		AnnualRatePercent: q.Get("annualRatePercent"),
		TenureYears:       q.Get("tenureYears"),
		Prepayment:        q.Get("prepayment"),
	}
	in, err := dto.ParseLoanFields(fields)
	if err != nil {
		respondError(w, err)
		return
	}

	h.calculate(w, r, in, fields.Supplied(), q.Get("productCode"))
}

func (h *EMIHandler) calculate(w http.ResponseWriter, r *http.Request, in emi.LoanInput, given product.Supplied, productCode string) {
	ctx := r.Context()
	in, code, err := applyProduct(ctx, h.products, productCode, in, given)
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := h.calculator.Calculate(ctx, in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewEMIResponse(result, code))
}

// applyProduct fills the rate and tenure the caller did not send from the
// named product. A blank code leaves the input untouched.
func applyProduct(ctx context.Context, products product.ProductService, code string, in emi.LoanInput, given product.Supplied) (emi.LoanInput, string, error) {
	if strings.TrimSpace(code) == "" {
		return in, "", nil
	}

	p, err := products.GetProduct(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return in, "", apperrors.NewValidationError("productCode", "Unknown loan product.")
		}
		return in, "", err
	}
	return p.Apply(in, given), p.Code, nil
}
