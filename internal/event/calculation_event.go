package event

import "time"

// CalculationCompletedEvent carries amounts as fixed two-place strings so
// consumers never see float artifacts.
type CalculationCompletedEvent struct {
	Timestamp time.Time          `json:"timestamp"`
	Input     CalculationInput   `json:"input"`
	Result    CalculationOutcome `json:"result"`
}

type CalculationInput struct {
	Principal         string  `json:"principal"`
	AnnualRatePercent string  `json:"annualRatePercent"`
	TenureYears       string  `json:"tenureYears"`
	Prepayment        *string `json:"prepayment,omitempty"`
}

type CalculationOutcome struct {
	MonthlyInstallment   string `json:"monthlyInstallment"`
	TotalInterestPayable string `json:"totalInterestPayable"`
	TotalAmountPayable   string `json:"totalAmountPayable"`
	InterestSaved        string `json:"interestSaved"`
}
