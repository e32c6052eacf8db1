package dto

import (
	"emi-calculator/internal/domain/product"
	"time"

	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	Code              string    `json:"code" example:"HOME"`
	Name              string    `json:"name" example:"Home Loan"`
	AnnualRatePercent float64   `json:"annualRatePercent" example:"8.5"`
	TenureYears       float64   `json:"tenureYears" example:"20"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func NewProductResponse(p *product.Product) ProductResponse {
	if p == nil {
		return ProductResponse{}
	}
	return ProductResponse{
		Code:              p.Code,
		Name:              p.Name,
		AnnualRatePercent: p.AnnualRatePercent,
		TenureYears:       p.TenureYears,
		UpdatedAt:         p.UpdatedAt,
	}
}

func NewProductListResponse(products []product.Product) []ProductResponse {
	resp := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, NewProductResponse(&products[i]))
	}
	return resp
}

type UpsertProductRequest struct {
	Name              string          `json:"name" example:"Home Loan"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent" swaggertype:"string" example:"8.5"`
	TenureYears       decimal.Decimal `json:"tenureYears" swaggertype:"string" example:"20"`
}

// ToProduct builds the domain value; validation is left to the product service.
func (r *UpsertProductRequest) ToProduct(code string) *product.Product {
	return &product.Product{
		Code:              product.NormalizeCode(code),
		Name:              r.Name,
		AnnualRatePercent: r.AnnualRatePercent.InexactFloat64(),
		TenureYears:       r.TenureYears.InexactFloat64(),
	}
}
