package handler

import (
	"emi-calculator/internal/api/handler/dto"
	"emi-calculator/internal/domain/emi"
	"emi-calculator/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEMIHandler(products *MockProductService) *EMIHandler {
	return NewEMIHandler(emi.NewCalculatorService(nil, logger), products, logger)
}

func postEMI(t *testing.T, h *EMIHandler, body string) (*httptest.ResponseRecorder, dto.EMIResponse, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/emi", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CalculateEMI(rec, req)

	var ok dto.EMIResponse
	var fail dto.ErrorResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ok))
	} else {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fail))
	}
	return rec, ok, fail
}

func TestEMIHandlerCalculateEMI(t *testing.T) {
	products := new(MockProductService)
	h := newEMIHandler(products)

	t.Run("computes the standard one year loan", func(t *testing.T) {
		rec, resp, _ := postEMI(t, h, `{"principal":100000,"annualRatePercent":10,"tenureYears":1}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "8791.59", resp.MonthlyInstallment)
		assert.Equal(t, "5499.06", resp.TotalInterestPayable)
		assert.Equal(t, "105499.06", resp.TotalAmountPayable)
		assert.Equal(t, "0.00", resp.InterestSaved)
		assert.Empty(t, resp.ProductCode)
	})

	t.Run("accepts numeric strings and a prepayment", func(t *testing.T) {
		rec, resp, _ := postEMI(t, h, `{"principal":"500000","annualRatePercent":"8.5","tenureYears":"20","prepayment":"200000"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "4339.12", resp.MonthlyInstallment)
		assert.Equal(t, "541387.88", resp.TotalInterestPayable)
		assert.Equal(t, "1041387.88", resp.TotalAmountPayable)
		assert.Equal(t, "341387.88", resp.InterestSaved)
	})

	t.Run("treats null prepayment as absent", func(t *testing.T) {
		rec, resp, _ := postEMI(t, h, `{"principal":100000,"annualRatePercent":10,"tenureYears":1,"prepayment":null}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "0.00", resp.InterestSaved)
	})

	validation := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{"zero principal", `{"principal":0,"annualRatePercent":10,"tenureYears":1}`, "principal", emi.MsgNonPositive},
		{"missing principal", `{"annualRatePercent":10,"tenureYears":1}`, "principal", emi.MsgNonPositive},
		{"negative rate", `{"principal":100000,"annualRatePercent":-5,"tenureYears":1}`, "annualRatePercent", emi.MsgNonPositive},
		{"missing tenure", `{"principal":100000,"annualRatePercent":10}`, "tenureYears", emi.MsgNonPositive},
		{"negative prepayment", `{"principal":100000,"annualRatePercent":10,"tenureYears":1,"prepayment":-1}`, "prepayment", emi.MsgNegativePrepay},
	}
	for _, tt := range validation {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, resp := postEMI(t, h, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.Equal(t, tt.field, resp.Error.Field)
		})
	}

	t.Run("rejects non numeric amount", func(t *testing.T) {
		rec, _, resp := postEMI(t, h, `{"principal":"lots","annualRatePercent":10,"tenureYears":1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, resp.Error.Message, "malformed request body")
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		rec, _, resp := postEMI(t, h, `{"principal":100000,"annualRatePercent":10,"tenureYears":1,"currency":"USD"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, resp.Error.Message, "unknown field")
	})

	t.Run("rejects inputs whose totals overflow", func(t *testing.T) {
		rec, _, resp := postEMI(t, h, `{"principal":1.7e308,"annualRatePercent":100,"tenureYears":1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, emi.MsgNonFiniteOutcome, resp.Error.Message)
	})

	t.Run("rejects overflowing inputs", func(t *testing.T) {
		rec, _, resp := postEMI(t, h, `{"principal":100000,"annualRatePercent":10,"tenureYears":1000000}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, emi.MsgNonFiniteOutcome, resp.Error.Message)
	})
}

func TestEMIHandlerProductCode(t *testing.T) {
	t.Run("fills rate and tenure from product", func(t *testing.T) {
		products := new(MockProductService)
		products.On("GetProduct", mock.Anything, "home").Return(homeProduct(), nil).Once()
		h := newEMIHandler(products)

		rec, resp, _ := postEMI(t, h, `{"principal":500000,"productCode":"home","prepayment":200000}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "4339.12", resp.MonthlyInstallment)
		assert.Equal(t, "341387.88", resp.InterestSaved)
		assert.Equal(t, "HOME", resp.ProductCode)
		products.AssertExpectations(t)
	})

	t.Run("explicit values override product", func(t *testing.T) {
		products := new(MockProductService)
		products.On("GetProduct", mock.Anything, "HOME").Return(homeProduct(), nil).Once()
		h := newEMIHandler(products)

		rec, resp, _ := postEMI(t, h, `{"principal":100000,"annualRatePercent":10,"tenureYears":1,"productCode":"HOME"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "8791.59", resp.MonthlyInstallment)
	})

	t.Run("explicit zero rate is not replaced by product", func(t *testing.T) {
		products := new(MockProductService)
		products.On("GetProduct", mock.Anything, "HOME").Return(homeProduct(), nil).Once()
		h := newEMIHandler(products)

		rec, _, resp := postEMI(t, h, `{"principal":1000,"annualRatePercent":0,"productCode":"HOME"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, emi.MsgNonPositive, resp.Error.Message)
		assert.Equal(t, "annualRatePercent", resp.Error.Field)
	})

	t.Run("explicit zero tenure in query is not replaced by product", func(t *testing.T) {
		products := new(MockProductService)
		products.On("GetProduct", mock.Anything, "HOME").Return(homeProduct(), nil).Once()
		h := newEMIHandler(products)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/emi?principal=1000&tenureYears=0&productCode=HOME", nil)
		rec := httptest.NewRecorder()
		h.CalculateEMIFromQuery(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "tenureYears", resp.Error.Field)
	})

	t.Run("blank query terms are filled from product", func(t *testing.T) {
		products := new(MockProductService)
		products.On("GetProduct", mock.Anything, "HOME").Return(homeProduct(), nil).Once()
		h := newEMIHandler(products)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/emi?principal=500000&annualRatePercent=&productCode=HOME", nil)
		rec := httptest.NewRecorder()
		h.CalculateEMIFromQuery(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.EMIResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "4339.12", resp.MonthlyInstallment)
	})

	t.Run("unknown product is a validation error", func(t *testing.T) {
		products := new(MockProductService)
		products.On("GetProduct", mock.Anything, "GOLD").Return(nil, fmt.Errorf("%w: product GOLD not found", apperrors.ErrNotFound)).Once()
		h := newEMIHandler(products)

		rec, _, resp := postEMI(t, h, `{"principal":100000,"productCode":"GOLD"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "productCode", resp.Error.Field)
	})

	t.Run("catalog failure is an internal error", func(t *testing.T) {
		products := new(MockProductService)
		products.On("GetProduct", mock.Anything, "HOME").Return(nil, fmt.Errorf("%w: boom", apperrors.ErrInternalServer)).Once()
		h := newEMIHandler(products)

		rec, _, resp := postEMI(t, h, `{"principal":100000,"productCode":"HOME"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "An unexpected error occurred.", resp.Error.Message)
	})
}

func TestEMIHandlerCalculateEMIFromQuery(t *testing.T) {
	h := newEMIHandler(new(MockProductService))

	t.Run("computes from query parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/emi?principal=250000&annualRatePercent=7.5&tenureYears=2.5", nil)
		rec := httptest.NewRecorder()
		h.CalculateEMIFromQuery(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.EMIResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "9164.92", resp.MonthlyInstallment)
		assert.Equal(t, "24947.66", resp.TotalInterestPayable)
		assert.Equal(t, "274947.66", resp.TotalAmountPayable)
	})

	t.Run("non numeric query value fails on its field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/emi?principal=abc&annualRatePercent=10&tenureYears=1", nil)
		rec := httptest.NewRecorder()
		h.CalculateEMIFromQuery(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, emi.MsgNonPositive, resp.Error.Message)
		assert.Equal(t, "principal", resp.Error.Field)
	})
}

func TestEMIHandlerServiceFailure(t *testing.T) {
	calc := new(MockCalculatorService)
	calc.On("Calculate", mock.Anything, mock.Anything).Return(nil, errors.New("unexpected")).Once()
	h := NewEMIHandler(calc, new(MockProductService), logger)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/emi", strings.NewReader(`{"principal":1,"annualRatePercent":1,"tenureYears":1}`))
	rec := httptest.NewRecorder()
	h.CalculateEMI(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	calc.AssertExpectations(t)
}
