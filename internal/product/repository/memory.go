package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/domain"
)

// MemoryProductRepository backs the service in LOCAL_MODE and in tests.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	nextID   int64
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int64]domain.Product),
		nextID:   1,
	}
}

func (r *MemoryProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (r *MemoryProductRepository) FindAllActive(ctx context.Context) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool {
		return p.Active
	}), nil
}

func (r *MemoryProductRepository) FindByNameContaining(ctx context.Context, name string) ([]domain.Product, error) {
	needle := strings.ToLower(name)
	return r.filter(func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	}), nil
}

func (r *MemoryProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool {
		return strings.EqualFold(p.Category, category)
	}), nil
}

func (r *MemoryProductRepository) FindInStock(ctx context.Context) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool {
		return p.Stock > 0 && p.Active
	}), nil
}

func (r *MemoryProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	product.UpdatedAt = now
	if product.ID == 0 {
		product.ID = r.nextID
		r.nextID++
		product.CreatedAt = now
	} else if _, ok := r.products[product.ID]; !ok {
		return nil, ErrProductNotFound
	}

	r.products[product.ID] = *product
	return product, nil
}

func (r *MemoryProductRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = make(map[int64]domain.Product)
	r.nextID = 1
	return nil
}

func (r *MemoryProductRepository) filter(keep func(domain.Product) bool) []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Product
	for _, p := range r.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
