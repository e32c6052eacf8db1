package handler

import (
	"context"
	"emi-calculator/internal/domain/emi"
	"emi-calculator/internal/domain/product"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockCalculatorService struct {
	mock.Mock
}

func (m *MockCalculatorService) Calculate(ctx context.Context, in emi.LoanInput) (emi.LoanResult, error) {
	args := m.Called(ctx, in)
	if res, ok := args.Get(0).(emi.LoanResult); ok {
		return res, args.Error(1)
	}
	return emi.LoanResult{}, args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) ListProducts(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	if products, ok := args.Get(0).([]product.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) GetProduct(ctx context.Context, code string) (*product.Product, error) {
	args := m.Called(ctx, code)
	if p, ok := args.Get(0).(*product.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) SaveProduct(ctx context.Context, p *product.Product) (*product.Product, error) {
	args := m.Called(ctx, p)
	if saved, ok := args.Get(0).(*product.Product); ok {
		return saved, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) Refresh(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func homeProduct() *product.Product {
	return &product.Product{Code: "HOME", Name: "Home Loan", AnnualRatePercent: 8.5, TenureYears: 20}
}
