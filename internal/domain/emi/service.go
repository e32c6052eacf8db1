package emi

import (
	"context"
	"emi-calculator/internal/event"
	"emi-calculator/internal/infrastructure/monitoring"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

type CalculatorService interface {
	Calculate(ctx context.Context, input LoanInput) (LoanResult, error)
}

type calculatorServiceImpl struct {
	publisher event.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewCalculatorService(publisher event.EventPublisher, logger *slog.Logger) CalculatorService {
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	return &calculatorServiceImpl{
		publisher: publisher,
		logger:    logger.With("component", "CalculatorService"),
		now:       time.Now,
	}
}

// Calculate runs Compute and publishes a completion event. A publishing
// failure is logged and does not affect the returned result.
func (s *calculatorServiceImpl) Calculate(ctx context.Context, input LoanInput) (LoanResult, error) {
	start := s.now()

	result, err := Compute(input)
	if err != nil {
		monitoring.RecordCalculation(monitoring.OutcomeInvalid, time.Since(start))
		s.logger.WarnContext(ctx, "Rejected EMI calculation", slog.Any("error", err))
		return LoanResult{}, err
	}

	if pubErr := s.publisher.PublishCalculationCompleted(ctx, newCompletedEvent(input, result, start)); pubErr != nil {
		s.logger.ErrorContext(ctx, "Failed to publish calculation event", slog.Any("error", pubErr))
	}

	monitoring.RecordCalculation(monitoring.OutcomeSuccess, time.Since(start))
	s.logger.InfoContext(ctx, "EMI calculated",
		"principal", input.Principal,
		"annualRatePercent", input.AnnualRatePercent,
		"tenureYears", input.TenureYears,
		"monthlyInstallment", result.MonthlyInstallment,
	)
	return result, nil
}

func newCompletedEvent(input LoanInput, result LoanResult, at time.Time) event.CalculationCompletedEvent {
	var prepayment *string
	if input.Prepayment != nil {
		p := FormatMoney(*input.Prepayment)
		prepayment = &p
	}

	return event.CalculationCompletedEvent{
		Timestamp: at.UTC(),
		Input: event.CalculationInput{
			Principal:         FormatMoney(input.Principal),
			AnnualRatePercent: decimal.NewFromFloat(input.AnnualRatePercent).String(),
			TenureYears:       decimal.NewFromFloat(input.TenureYears).String(),
			Prepayment:        prepayment,
		},
		Result: event.CalculationOutcome{
			MonthlyInstallment:   FormatMoney(result.MonthlyInstallment),
			TotalInterestPayable: FormatMoney(result.TotalInterestPayable),
			TotalAmountPayable:   FormatMoney(result.TotalAmountPayable),
			InterestSaved:        FormatMoney(result.InterestSaved),
		},
	}
}
