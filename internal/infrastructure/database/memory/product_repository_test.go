package memory

import (
	"context"
	"emi-calculator/internal/domain/product"
	"emi-calculator/internal/pkg/apperrors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(product.DefaultProducts())

	t.Run("lists seeded products sorted by code", func(t *testing.T) {
		products, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, products, 4)
		assert.Equal(t, "CAR", products[0].Code)
		assert.Equal(t, "PERSONAL", products[3].Code)
		assert.False(t, products[0].UpdatedAt.IsZero())
	})

	t.Run("gets a product by code", func(t *testing.T) {
		p, err := repo.GetByCode(ctx, "HOME")
		require.NoError(t, err)
		assert.Equal(t, 8.5, p.AnnualRatePercent)
	})

	t.Run("returns not found for unknown code", func(t *testing.T) {
		p, err := repo.GetByCode(ctx, "GOLD")
		assert.Nil(t, p)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("upsert inserts and replaces", func(t *testing.T) {
		saved, err := repo.Upsert(ctx, &product.Product{Code: "GOLD", Name: "Gold Loan", AnnualRatePercent: 9, TenureYears: 1})
		require.NoError(t, err)
		assert.False(t, saved.UpdatedAt.IsZero())

		_, err = repo.Upsert(ctx, &product.Product{Code: "GOLD", Name: "Gold Loan", AnnualRatePercent: 9.25, TenureYears: 1})
		require.NoError(t, err)

		p, err := repo.GetByCode(ctx, "GOLD")
		require.NoError(t, err)
		assert.Equal(t, 9.25, p.AnnualRatePercent)

		products, _ := repo.List(ctx)
		assert.Len(t, products, 5)
	})
}
