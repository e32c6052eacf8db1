package emi

import (
	"emi-calculator/internal/pkg/apperrors"
	"math"

	"github.com/shopspring/decimal"
)

const (
	MsgNonPositive      = "All values must be positive numbers."
	MsgNegativePrepay   = "Prepayment must be a non-negative number."
	MsgNonFiniteOutcome = "Inputs produce a non-finite result."

	monthsPerYear = 12
	moneyPlaces   = 2
)

type Money = float64

// LoanInput is a single calculation request. Prepayment is optional; nil and
// zero are treated the same.
type LoanInput struct {
	Principal         Money
	AnnualRatePercent float64
	TenureYears       float64
	Prepayment        *Money
}

// LoanResult holds the four figures of a calculation, each rounded to two
// decimal places.
type LoanResult struct {
	MonthlyInstallment   Money
	TotalInterestPayable Money
	TotalAmountPayable   Money
	InterestSaved        Money
}

// Validate checks the positivity and finiteness of every input field.
func (in LoanInput) Validate() error {
	switch {
	case !isPositive(in.Principal):
		return apperrors.NewValidationError("principal", MsgNonPositive)
	case !isPositive(in.AnnualRatePercent):
		return apperrors.NewValidationError("annualRatePercent", MsgNonPositive)
	case !isPositive(in.TenureYears):
		return apperrors.NewValidationError("tenureYears", MsgNonPositive)
	}
	if in.Prepayment != nil {
		p := *in.Prepayment
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return apperrors.NewValidationError("prepayment", MsgNegativePrepay)
		}
	}
	return nil
}

func (in LoanInput) hasPrepayment() bool {
	return in.Prepayment != nil && *in.Prepayment > 0
}

// Compute returns the EMI figures for in. Validation happens before any
// arithmetic, so an error never comes with a partial result.
//
// The monthly installment uses the standard amortization formula with a
// fractional month count when the tenure is not a whole number of months.
// Interest saved by a prepayment is estimated as total interest minus the
// prepayment; the schedule is not re-amortized.
func Compute(in LoanInput) (LoanResult, error) {
	if err := in.Validate(); err != nil {
		return LoanResult{}, err
	}

	r := in.AnnualRatePercent / monthsPerYear / 100
	n := in.TenureYears * monthsPerYear

	installment := monthlyInstallment(in.Principal, r, n)
	if !isFinite(installment) {
		return LoanResult{}, apperrors.NewValidationError("", MsgNonFiniteOutcome)
	}

	principal := decimal.NewFromFloat(in.Principal)
	emi := decimal.NewFromFloat(installment)
	totalInterest := emi.Mul(decimal.NewFromFloat(n)).Sub(principal)
	totalAmount := principal.Add(totalInterest)

	saved := decimal.Zero
	if in.hasPrepayment() {
		saved = totalInterest.Sub(decimal.NewFromFloat(*in.Prepayment))
	}

	res := LoanResult{
		MonthlyInstallment:   RoundMoney(emi),
		TotalInterestPayable: RoundMoney(totalInterest),
		TotalAmountPayable:   RoundMoney(totalAmount),
		InterestSaved:        RoundMoney(saved),
	}
	// The totals can leave float64 range even when the installment fits.
	if !res.finite() {
		return LoanResult{}, apperrors.NewValidationError("", MsgNonFiniteOutcome)
	}
	return res, nil
}

func (r LoanResult) finite() bool {
	return isFinite(r.MonthlyInstallment) &&
		isFinite(r.TotalInterestPayable) &&
		isFinite(r.TotalAmountPayable) &&
		isFinite(r.InterestSaved)
}

func monthlyInstallment(principal, r, n float64) float64 {
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	if growth == 1 {
		// r is below float64 resolution around 1.
		return principal / n
	}
	return principal * r * growth / (growth - 1)
}

// RoundMoney rounds half away from zero to two places.
func RoundMoney(d decimal.Decimal) Money {
	return d.Round(moneyPlaces).InexactFloat64()
}

// FormatMoney renders m with exactly two decimal places.
func FormatMoney(m Money) string {
	return decimal.NewFromFloat(m).StringFixed(moneyPlaces)
}

func isPositive(v float64) bool {
	return isFinite(v) && v > 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
