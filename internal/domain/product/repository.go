package product

import "context"

type Repository interface {
	List(ctx context.Context) ([]Product, error)

	GetByCode(ctx context.Context, code string) (*Product, error)

	Upsert(ctx context.Context, p *Product) (*Product, error)
}
