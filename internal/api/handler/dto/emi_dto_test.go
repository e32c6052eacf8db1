package dto

import (
	"emi-calculator/internal/domain/emi"
	"emi-calculator/internal/pkg/apperrors"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEMIRequestToLoanInput(t *testing.T) {
	t.Run("decodes numbers and strings alike", func(t *testing.T) {
		var req CalculateEMIRequest
		require.NoError(t, json.Unmarshal([]byte(`{"principal":"100000.50","annualRatePercent":10,"tenureYears":"1.5","prepayment":250}`), &req))

		in := req.ToLoanInput()
		assert.Equal(t, 100000.50, in.Principal)
		assert.Equal(t, 10.0, in.AnnualRatePercent)
		assert.Equal(t, 1.5, in.TenureYears)
		require.NotNil(t, in.Prepayment)
		assert.Equal(t, 250.0, *in.Prepayment)
	})

	t.Run("absent prepayment stays nil", func(t *testing.T) {
		var req CalculateEMIRequest
		require.NoError(t, json.Unmarshal([]byte(`{"principal":1,"annualRatePercent":1,"tenureYears":1}`), &req))

		assert.Nil(t, req.ToLoanInput().Prepayment)
	})

	t.Run("missing required fields become zero", func(t *testing.T) {
		var req CalculateEMIRequest
		require.NoError(t, json.Unmarshal([]byte(`{}`), &req))

		in := req.ToLoanInput()
		assert.Zero(t, in.Principal)
		assert.Zero(t, in.TenureYears)
	})
}

func TestParseLoanFields(t *testing.T) {
	t.Run("parses all fields", func(t *testing.T) {
		in, err := ParseLoanFields(LoanFields{Principal: " 250000 ", AnnualRatePercent: "7.5", TenureYears: "2.5", Prepayment: "1000"})
		require.NoError(t, err)
		assert.Equal(t, 250000.0, in.Principal)
		assert.Equal(t, 7.5, in.AnnualRatePercent)
		assert.Equal(t, 2.5, in.TenureYears)
		require.NotNil(t, in.Prepayment)
		assert.Equal(t, 1000.0, *in.Prepayment)
	})

	t.Run("blank fields are unset", func(t *testing.T) {
		in, err := ParseLoanFields(LoanFields{Principal: "5"})
		require.NoError(t, err)
		assert.Zero(t, in.AnnualRatePercent)
		assert.Nil(t, in.Prepayment)
	})

	tests := []struct {
		name    string
		fields  LoanFields
		field   string
		message string
	}{
		{"bad principal", LoanFields{Principal: "1e5x"}, "principal", emi.MsgNonPositive},
		{"bad rate", LoanFields{Principal: "1", AnnualRatePercent: "ten"}, "annualRatePercent", emi.MsgNonPositive},
		{"bad tenure", LoanFields{Principal: "1", AnnualRatePercent: "1", TenureYears: "NaN"}, "tenureYears", emi.MsgNonPositive},
		{"bad prepayment", LoanFields{Principal: "1", AnnualRatePercent: "1", TenureYears: "1", Prepayment: "some"}, "prepayment", emi.MsgNegativePrepay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLoanFields(tt.fields)

			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.message, ve.Message)
		})
	}
}

func TestNewEMIResponse(t *testing.T) {
	resp := NewEMIResponse(emi.LoanResult{
		MonthlyInstallment:   8791.59,
		TotalInterestPayable: 5499.06,
		TotalAmountPayable:   105499.06,
		InterestSaved:        0,
	}, "")

	assert.Equal(t, "8791.59", resp.MonthlyInstallment)
	assert.Equal(t, "0.00", resp.InterestSaved)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "productCode")
}

func TestSuppliedTerms(t *testing.T) {
	t.Run("json presence counts, zero included", func(t *testing.T) {
		var req CalculateEMIRequest
		require.NoError(t, json.Unmarshal([]byte(`{"principal":1000,"annualRatePercent":0}`), &req))

		given := req.Supplied()
		assert.True(t, given.Rate)
		assert.False(t, given.Tenure)
	})

	t.Run("json null is absent", func(t *testing.T) {
		var req CalculateEMIRequest
		require.NoError(t, json.Unmarshal([]byte(`{"principal":1000,"tenureYears":null}`), &req))

		assert.False(t, req.Supplied().Tenure)
	})

	t.Run("blank text is absent", func(t *testing.T) {
		given := LoanFields{Principal: "1000", AnnualRatePercent: " ", TenureYears: "0"}.Supplied()
		assert.False(t, given.Rate)
		assert.True(t, given.Tenure)
	})
}
