package repository

import (
	"context"
	"testing"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProductRepository(t *testing.T) {
	repo := NewMemoryProductRepository()
	ctx := context.Background()

	p, err := repo.Save(ctx, &domain.Product{Name: "Widget", Stock: 3, Active: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = repo.Save(ctx, &domain.Product{ID: 999, Name: "Ghost"})
	assert.ErrorIs(t, err, ErrProductNotFound)

	require.NoError(t, repo.DeleteAll(ctx))
	active, err := repo.FindAllActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}
