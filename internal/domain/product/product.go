package product

import (
	"emi-calculator/internal/domain/emi"
	"emi-calculator/internal/pkg/apperrors"
	"math"
	"regexp"
	"strings"
	"time"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9_]{2,32}$`)

// Product is a rate card entry used to prefill a calculation.
type Product struct {
	Code              string
	Name              string
	AnnualRatePercent float64
	TenureYears       float64
	UpdatedAt         time.Time
}

// DefaultProducts seeds the in-memory catalog when no database is configured.
func DefaultProducts() []Product {
	return []Product{
		{Code: "HOME", Name: "Home Loan", AnnualRatePercent: 8.5, TenureYears: 20},
		{Code: "CAR", Name: "Car Loan", AnnualRatePercent: 9.5, TenureYears: 5},
		{Code: "PERSONAL", Name: "Personal Loan", AnnualRatePercent: 12, TenureYears: 3},
		{Code: "EDUCATION", Name: "Education Loan", AnnualRatePercent: 10, TenureYears: 7},
	}
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (p *Product) Validate() error {
	if !codePattern.MatchString(p.Code) {
		return apperrors.NewValidationError("code", "code must be 2-32 characters of A-Z, 0-9 or _")
	}
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if !positive(p.AnnualRatePercent) {
		return apperrors.NewValidationError("annualRatePercent", emi.MsgNonPositive)
	}
	if !positive(p.TenureYears) {
		return apperrors.NewValidationError("tenureYears", emi.MsgNonPositive)
	}
	return nil
}

// Supplied records which loan terms the caller sent explicitly.
type Supplied struct {
	Rate   bool
	Tenure bool
}

// Apply fills the rate and tenure of in from the product where the caller
// did not send them. Sent values always win, zero included, so they still
// go through validation.
func (p Product) Apply(in emi.LoanInput, given Supplied) emi.LoanInput {
	if !given.Rate {
		in.AnnualRatePercent = p.AnnualRatePercent
	}
	if !given.Tenure {
		in.TenureYears = p.TenureYears
	}
	return in
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
