package postgres

import (
	"context"
	"emi-calculator/internal/domain/product"
	"emi-calculator/internal/infrastructure/monitoring"
	"emi-calculator/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	listProductsSQL = `
        SELECT code, name, annual_rate_percent, tenure_years, updated_at
        FROM loan_products
        ORDER BY code`

	getProductSQL = `
        SELECT code, name, annual_rate_percent, tenure_years, updated_at
        FROM loan_products
        WHERE code = $1`

	upsertProductSQL = `
        INSERT INTO loan_products (code, name, annual_rate_percent, tenure_years, updated_at)
        VALUES ($1, $2, $3, $4, NOW())
        ON CONFLICT (code) DO UPDATE
        SET name = EXCLUDED.name,
            annual_rate_percent = EXCLUDED.annual_rate_percent,
            tenure_years = EXCLUDED.tenure_years,
            updated_at = NOW()
        RETURNING code, name, annual_rate_percent, tenure_years, updated_at`
)

type ProductRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ product.Repository = (*ProductRepository)(nil)

func NewProductRepository(db DBPool, logger *slog.Logger) *ProductRepository {
	if db == nil {
		panic("DBPool cannot be nil for ProductRepository")
	}
	return &ProductRepository{
		db:     db,
		logger: logger.With("component", "ProductRepository"),
	}
}

func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, listProductsSQL)
	if err != nil {
		monitoring.RecordDBQuery("list_products", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to query loan products", "error", err)
		return nil, apperrors.WrapDatabaseError(err, "failed to list loan products")
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.Code, &p.Name, &p.AnnualRatePercent, &p.TenureYears, &p.UpdatedAt); err != nil {
			monitoring.RecordDBQuery("list_products", "error", time.Since(start))
			r.logger.ErrorContext(ctx, "Failed to scan loan product row", "error", err)
			return nil, apperrors.WrapDatabaseError(err, "failed to scan loan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		monitoring.RecordDBQuery("list_products", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Error iterating loan product rows", "error", err)
		return nil, apperrors.WrapDatabaseError(err, "failed to iterate loan products")
	}

	monitoring.RecordDBQuery("list_products", "success", time.Since(start))
	r.logger.DebugContext(ctx, "Loaded loan products", "count", len(products))
	return products, nil
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	start := time.Now()
	var p product.Product
	err := r.db.QueryRow(ctx, getProductSQL, code).
		Scan(&p.Code, &p.Name, &p.AnnualRatePercent, &p.TenureYears, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			monitoring.RecordDBQuery("get_product", "not_found", time.Since(start))
			return nil, fmt.Errorf("%w: loan product %s", apperrors.ErrNotFound, code)
		}
		monitoring.RecordDBQuery("get_product", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to get loan product", "code", code, "error", err)
		return nil, apperrors.WrapDatabaseError(err, "failed to get loan product")
	}

	monitoring.RecordDBQuery("get_product", "success", time.Since(start))
	return &p, nil
}

func (r *ProductRepository) Upsert(ctx context.Context, in *product.Product) (*product.Product, error) {
	start := time.Now()
	var saved product.Product
	err := r.db.QueryRow(ctx, upsertProductSQL, in.Code, in.Name, in.AnnualRatePercent, in.TenureYears).
		Scan(&saved.Code, &saved.Name, &saved.AnnualRatePercent, &saved.TenureYears, &saved.UpdatedAt)
	if err != nil {
		monitoring.RecordDBQuery("upsert_product", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to upsert loan product", "code", in.Code, "error", err)
		return nil, apperrors.WrapDatabaseError(err, "failed to save loan product")
	}

	monitoring.RecordDBQuery("upsert_product", "success", time.Since(start))
	r.logger.InfoContext(ctx, "Loan product saved", "code", saved.Code)
	return &saved, nil
}
