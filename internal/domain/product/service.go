package product

import (
	"context"
	"emi-calculator/internal/infrastructure/monitoring"
	"emi-calculator/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]Product, error)

	GetProduct(ctx context.Context, code string) (*Product, error)

	SaveProduct(ctx context.Context, p *Product) (*Product, error)

	Refresh(ctx context.Context) (int, error)
}

// productServiceImpl serves reads from a snapshot of the repository so the
// calculator path never waits on the database.
type productServiceImpl struct {
	repo   Repository
	logger *slog.Logger

	mu       sync.RWMutex
	snapshot map[string]Product
	loaded   bool
}

func NewProductService(repo Repository, logger *slog.Logger) ProductService {
	return &productServiceImpl{
		repo:     repo,
		logger:   logger.With("component", "ProductService"),
		snapshot: make(map[string]Product),
	}
}

func (s *productServiceImpl) ListProducts(ctx context.Context) ([]Product, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	products := make([]Product, 0, len(s.snapshot))
	for _, p := range s.snapshot {
		products = append(products, p)
	}
	s.mu.RUnlock()

	sort.Slice(products, func(i, j int) bool { return products[i].Code < products[j].Code })
	return products, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, code string) (*Product, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	code = NormalizeCode(code)
	s.mu.RLock()
	p, ok := s.snapshot[code]
	s.mu.RUnlock()
	if !ok {
		s.logger.WarnContext(ctx, "Product not found", "code", code)
		return nil, fmt.Errorf("%w: product %s not found", apperrors.ErrNotFound, code)
	}
	return &p, nil
}

func (s *productServiceImpl) SaveProduct(ctx context.Context, p *Product) (*Product, error) {
	p.Code = NormalizeCode(p.Code)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, p)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save product", "code", p.Code, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to save product %s: %w", apperrors.ErrInternalServer, p.Code, err)
	}

	s.mu.Lock()
	s.snapshot[saved.Code] = *saved
	size := len(s.snapshot)
	s.mu.Unlock()
	monitoring.SetCatalogSize(size)

	s.logger.InfoContext(ctx, "Product saved", "code", saved.Code)
	return saved, nil
}

// Refresh replaces the snapshot with the repository contents. The previous
// snapshot is kept when loading fails.
func (s *productServiceImpl) Refresh(ctx context.Context) (int, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load product catalog", slog.Any("error", err))
		return 0, fmt.Errorf("%w: failed to load product catalog: %w", apperrors.ErrInternalServer, err)
	}

	next := make(map[string]Product, len(products))
	for _, p := range products {
		next[p.Code] = p
	}

	s.mu.Lock()
	s.snapshot = next
	s.loaded = true
	s.mu.Unlock()
	monitoring.SetCatalogSize(len(next))

	s.logger.InfoContext(ctx, "Product catalog refreshed", "count", len(next))
	return len(next), nil
}

func (s *productServiceImpl) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	_, err := s.Refresh(ctx)
	return err
}
