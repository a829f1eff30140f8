package repository

import (
	"context"
	"errors"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/domain"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository is the persistence boundary for products. Save
// inserts when the product has no identity yet and updates otherwise;
// every method touches at most one row per product.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindAllActive(ctx context.Context) ([]domain.Product, error)
	FindByNameContaining(ctx context.Context, name string) ([]domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Product, error)
	FindInStock(ctx context.Context) ([]domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteAll(ctx context.Context) error
}
