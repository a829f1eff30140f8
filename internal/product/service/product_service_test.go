package service

import (
	"context"
	"testing"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/domain"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProductService(t *testing.T) (*ProductService, repository.ProductRepository) {
	t.Helper()
	repo := repository.NewMemoryProductRepository()
	return NewProductService(repo, zap.NewNop()), repo
}

func createProduct(t *testing.T, svc *ProductService, name string, stock int) *domain.Product {
	t.Helper()
	p, err := svc.CreateProduct(context.Background(), domain.CreateProductRequest{
		Name:     name,
		Price:    9.99,
		Stock:    stock,
		Category: "electronics",
	})
	require.NoError(t, err)
	return p
}

func TestCreateProductDefaultsToActive(t *testing.T) {
	svc, _ := newTestProductService(t)

	p := createProduct(t, svc, "Widget", 5)
	assert.True(t, p.Active)
	assert.NotZero(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestAdjustStock(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		delta     int
		wantStock int
		wantErr   error
	}{
		{name: "deduct within stock", stock: 10, delta: -3, wantStock: 7},
		{name: "deduct to zero", stock: 4, delta: -4, wantStock: 0},
		{name: "replenish", stock: 2, delta: 8, wantStock: 10},
		{name: "deduct below zero", stock: 5, delta: -6, wantStock: 5, wantErr: ErrInsufficientStock},
		{name: "deduct from zero", stock: 0, delta: -1, wantStock: 0, wantErr: ErrInsufficientStock},
		{name: "zero delta", stock: 3, delta: 0, wantStock: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestProductService(t)
			p := createProduct(t, svc, "Widget", tt.stock)

			result, err := svc.AdjustStock(context.Background(), p.ID, tt.delta)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.stock, result.PreviousStock)
				assert.Equal(t, tt.wantStock, result.NewStock)
			}

			stored, err := svc.GetProductByID(context.Background(), p.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStock, stored.Stock)
		})
	}
}

func TestAdjustStockRoundTrip(t *testing.T) {
	svc, _ := newTestProductService(t)
	p := createProduct(t, svc, "Widget", 10)
	ctx := context.Background()

	result, err := svc.AdjustStock(ctx, p.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 7, result.NewStock)

	_, err = svc.AdjustStock(ctx, p.ID, -8)
	require.ErrorIs(t, err, ErrInsufficientStock)

	stored, err := svc.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.Stock)
}

func TestAdjustStockNotFound(t *testing.T) {
	svc, _ := newTestProductService(t)

	_, err := svc.AdjustStock(context.Background(), 42, -1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateProductReplacesAllFields(t *testing.T) {
	svc, _ := newTestProductService(t)
	p := createProduct(t, svc, "Widget", 5)

	updated, err := svc.UpdateProduct(context.Background(), p.ID, domain.UpdateProductRequest{
		Name:        "Gadget",
		Description: "updated",
		Price:       19.99,
		Stock:       42,
		Category:    "tools",
		Active:      false,
	})
	require.NoError(t, err)

	assert.Equal(t, "Gadget", updated.Name)
	assert.Equal(t, "updated", updated.Description)
	assert.Equal(t, 19.99, updated.Price)
	assert.Equal(t, 42, updated.Stock)
	assert.Equal(t, "tools", updated.Category)
	assert.False(t, updated.Active)
}

// The full-record update path writes stock verbatim; only the
// delta-based adjustment enforces non-negativity.
func TestUpdateProductBypassesStockGuard(t *testing.T) {
	svc, _ := newTestProductService(t)
	p := createProduct(t, svc, "Widget", 5)

	updated, err := svc.UpdateProduct(context.Background(), p.ID, domain.UpdateProductRequest{
		Name:   "Widget",
		Price:  9.99,
		Stock:  -5,
		Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, -5, updated.Stock)
}

func TestUpdateProductNotFound(t *testing.T) {
	svc, _ := newTestProductService(t)

	_, err := svc.UpdateProduct(context.Background(), 42, domain.UpdateProductRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProductIsSoft(t *testing.T) {
	svc, _ := newTestProductService(t)
	p := createProduct(t, svc, "Widget", 5)
	ctx := context.Background()

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))

	all, err := svc.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	inStock, err := svc.GetInStockProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, inStock)

	// Get by id still exposes the row.
	stored, err := svc.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestDeleteProductIdempotent(t *testing.T) {
	svc, _ := newTestProductService(t)
	p := createProduct(t, svc, "Widget", 5)
	ctx := context.Background()

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	require.NoError(t, svc.DeleteProduct(ctx, p.ID))

	stored, err := svc.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestDeleteProductNotFound(t *testing.T) {
	svc, _ := newTestProductService(t)

	err := svc.DeleteProduct(context.Background(), 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListingFilters(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	laptop := createProduct(t, svc, "Gaming Laptop", 3)
	_, err := svc.CreateProduct(ctx, domain.CreateProductRequest{
		Name:     "Desk Lamp",
		Price:    14.5,
		Stock:    0,
		Category: "Home",
	})
	require.NoError(t, err)

	byName, err := svc.SearchByName(ctx, "laptop")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, laptop.ID, byName[0].ID)

	byCategory, err := svc.GetByCategory(ctx, "HOME")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Desk Lamp", byCategory[0].Name)

	inStock, err := svc.GetInStockProducts(ctx)
	require.NoError(t, err)
	require.Len(t, inStock, 1)
	assert.Equal(t, laptop.ID, inStock[0].ID)

	all, err := svc.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
