package product_test

import (
	"emi-calculator/internal/domain/emi"
	"emi-calculator/internal/domain/product"
	"emi-calculator/internal/pkg/apperrors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductValidate(t *testing.T) {
	valid := product.Product{Code: "HOME", Name: "Home Loan", AnnualRatePercent: 8.5, TenureYears: 20}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		mut   func(p *product.Product)
		field string
	}{
		{"lowercase code", func(p *product.Product) { p.Code = "home" }, "code"},
		{"short code", func(p *product.Product) { p.Code = "H" }, "code"},
		{"blank name", func(p *product.Product) { p.Name = "  " }, "name"},
		{"zero rate", func(p *product.Product) { p.AnnualRatePercent = 0 }, "annualRatePercent"},
		{"negative tenure", func(p *product.Product) { p.TenureYears = -1 }, "tenureYears"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mut(&p)

			err := p.Validate()
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "HOME", product.NormalizeCode("  home "))
	assert.Equal(t, "CAR_2", product.NormalizeCode("car_2"))
}

func TestProductApply(t *testing.T) {
	home := product.Product{Code: "HOME", Name: "Home Loan", AnnualRatePercent: 8.5, TenureYears: 20}

	t.Run("fills missing rate and tenure", func(t *testing.T) {
		in := home.Apply(emi.LoanInput{Principal: 500000}, product.Supplied{})
		assert.Equal(t, 8.5, in.AnnualRatePercent)
		assert.Equal(t, 20.0, in.TenureYears)
		assert.Equal(t, 500000.0, in.Principal)
	})

	t.Run("keeps caller supplied values", func(t *testing.T) {
		in := home.Apply(emi.LoanInput{Principal: 500000, AnnualRatePercent: 7.9, TenureYears: 15}, product.Supplied{Rate: true, Tenure: true})
		assert.Equal(t, 7.9, in.AnnualRatePercent)
		assert.Equal(t, 15.0, in.TenureYears)
	})

	t.Run("keeps an explicit zero so validation rejects it", func(t *testing.T) {
		in := home.Apply(emi.LoanInput{Principal: 100000, TenureYears: 1}, product.Supplied{Rate: true, Tenure: true})
		assert.Equal(t, 0.0, in.AnnualRatePercent)

		_, err := emi.Compute(in)
		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "annualRatePercent", verr.Field)
	})

	t.Run("fills only the term that was not sent", func(t *testing.T) {
		in := home.Apply(emi.LoanInput{Principal: 100000, AnnualRatePercent: 9}, product.Supplied{Rate: true})
		assert.Equal(t, 9.0, in.AnnualRatePercent)
		assert.Equal(t, 20.0, in.TenureYears)
	})
}

func TestDefaultProductsAreValid(t *testing.T) {
	for _, p := range product.DefaultProducts() {
		assert.NoError(t, p.Validate(), p.Code)
	}
}
