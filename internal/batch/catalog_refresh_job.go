package batch

import (
	"context"
	"emi-calculator/internal/domain/product"
	"fmt"
	"log/slog"
	"time"
)

// CatalogRefreshJob reloads the loan product snapshot from its repository.
type CatalogRefreshJob struct {
	productService product.ProductService
	logger         *slog.Logger
}

func NewCatalogRefreshJob(productSvc product.ProductService, logger *slog.Logger) *CatalogRefreshJob {
	if productSvc == nil || logger == nil {
		panic("CatalogRefreshJob dependencies cannot be nil")
	}
	return &CatalogRefreshJob{
		productService: productSvc,
		logger:         logger.With("job", "CatalogRefresh"),
	}
}

func (j *CatalogRefreshJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting loan product catalog refresh job.")

	count, err := j.productService.Refresh(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Catalog refresh failed, keeping previous snapshot.",
			slog.Any("error", err),
			slog.Duration("duration", time.Since(startTime)),
		)
		return fmt.Errorf("catalog refresh failed: %w", err)
	}

	j.logger.InfoContext(ctx, "Catalog refresh job finished successfully.",
		slog.Int("products", count),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
