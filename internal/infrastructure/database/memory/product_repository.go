package memory

import (
	"context"
	"emi-calculator/internal/domain/product"
	"emi-calculator/internal/pkg/apperrors"
	"sort"
	"sync"
	"time"
)

// ProductRepository keeps the catalog in process. It backs the service when
// no database URL is configured.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]product.Product
	now      func() time.Time
}

func NewProductRepository(seed []product.Product) *ProductRepository {
	r := &ProductRepository{
		products: make(map[string]product.Product, len(seed)),
		now:      time.Now,
	}
	for _, p := range seed {
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = r.now().UTC()
		}
		r.products[p.Code] = p
	}
	return r
}

func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]product.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *ProductRepository) Upsert(ctx context.Context, p *product.Product) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *p
	saved.UpdatedAt = r.now().UTC()
	r.products[saved.Code] = saved
	return &saved, nil
}

var _ product.Repository = (*ProductRepository)(nil)
