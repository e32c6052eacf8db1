package dto

import (
	"emi-calculator/internal/domain/emi"
	"emi-calculator/internal/domain/product"
	"emi-calculator/internal/pkg/apperrors"
	"strings"

	"github.com/shopspring/decimal"
)

// CalculateEMIRequest accepts amounts as JSON numbers or numeric strings.
// Rate and tenure may be omitted when a product code supplies them.
type CalculateEMIRequest struct {
	Principal         decimal.NullDecimal `json:"principal" swaggertype:"string" example:"100000"`
	AnnualRatePercent decimal.NullDecimal `json:"annualRatePercent" swaggertype:"string" example:"10"`
	TenureYears       decimal.NullDecimal `json:"tenureYears" swaggertype:"string" example:"1"`
	Prepayment        decimal.NullDecimal `json:"prepayment,omitempty" swaggertype:"string" example:"0"`
	ProductCode       string              `json:"productCode,omitempty" example:"HOME"`
}

func (r *CalculateEMIRequest) ToLoanInput() emi.LoanInput {
	in := emi.LoanInput{
		Principal:         nullToFloat(r.Principal),
		AnnualRatePercent: nullToFloat(r.AnnualRatePercent),
		TenureYears:       nullToFloat(r.TenureYears),
	}
	if r.Prepayment.Valid {
		p := r.Prepayment.Decimal.InexactFloat64()
		in.Prepayment = &p
	}
	return in
}

// Supplied reports which of rate and tenure were present in the body.
func (r *CalculateEMIRequest) Supplied() product.Supplied {
	return product.Supplied{Rate: r.AnnualRatePercent.Valid, Tenure: r.TenureYears.Valid}
}

func nullToFloat(d decimal.NullDecimal) float64 {
	if !d.Valid {
		return 0
	}
	return d.Decimal.InexactFloat64()
}

// LoanFields is the raw text of a calculation as it arrives from a query
// string or an HTML form.
type LoanFields struct {
	Principal         string
	AnnualRatePercent string
	TenureYears       string
	Prepayment        string
}

// Supplied reports which of rate and tenure are non-blank.
func (f LoanFields) Supplied() product.Supplied {
	return product.Supplied{
		Rate:   strings.TrimSpace(f.AnnualRatePercent) != "",
		Tenure: strings.TrimSpace(f.TenureYears) != "",
	}
}

// ParseLoanFields converts raw text into a LoanInput. Blank fields are left
// unset; text that is not a number is a validation error on that field.
func ParseLoanFields(f LoanFields) (emi.LoanInput, error) {
	var in emi.LoanInput
	var err error

	if in.Principal, err = parseRequired("principal", f.Principal); err != nil {
		return emi.LoanInput{}, err
	}
	if in.AnnualRatePercent, err = parseRequired("annualRatePercent", f.AnnualRatePercent); err != nil {
		return emi.LoanInput{}, err
	}
	if in.TenureYears, err = parseRequired("tenureYears", f.TenureYears); err != nil {
		return emi.LoanInput{}, err
	}

	if raw := strings.TrimSpace(f.Prepayment); raw != "" {
		d, perr := decimal.NewFromString(raw)
		if perr != nil {
			return emi.LoanInput{}, apperrors.NewValidationError("prepayment", emi.MsgNegativePrepay)
		}
		p := d.InexactFloat64()
		in.Prepayment = &p
	}
	return in, nil
}

func parseRequired(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(field, emi.MsgNonPositive)
	}
	return d.InexactFloat64(), nil
}

type EMIResponse struct {
	MonthlyInstallment   string `json:"monthlyInstallment" example:"8791.59"`
	TotalInterestPayable string `json:"totalInterestPayable" example:"5499.06"`
	TotalAmountPayable   string `json:"totalAmountPayable" example:"105499.06"`
	InterestSaved        string `json:"interestSaved" example:"0.00"`
	ProductCode          string `json:"productCode,omitempty" example:"HOME"`
}

func NewEMIResponse(res emi.LoanResult, productCode string) EMIResponse {
	return EMIResponse{
		MonthlyInstallment:   emi.FormatMoney(res.MonthlyInstallment),
		TotalInterestPayable: emi.FormatMoney(res.TotalInterestPayable),
		TotalAmountPayable:   emi.FormatMoney(res.TotalAmountPayable),
		InterestSaved:        emi.FormatMoney(res.InterestSaved),
		ProductCode:          productCode,
	}
}
