package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/order/domain"
)

type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[int64]domain.Order
	nextID int64
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[int64]domain.Order),
		nextID: 1,
	}
}

func (r *MemoryOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &o, nil
}

func (r *MemoryOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.filter(func(domain.Order) bool { return true }, byID), nil
}

func (r *MemoryOrderRepository) FindByCustomerEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool {
		return o.CustomerEmail == email
	}, byCreatedAtDesc), nil
}

func (r *MemoryOrderRepository) FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool {
		return o.Status == status
	}, byID), nil
}

func (r *MemoryOrderRepository) FindByProductID(ctx context.Context, productID int64) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool {
		return o.ProductID == productID
	}, byID), nil
}

func (r *MemoryOrderRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	order.UpdatedAt = now
	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
		order.CreatedAt = now
	} else if _, ok := r.orders[order.ID]; !ok {
		return nil, ErrOrderNotFound
	}

	r.orders[order.ID] = *order
	return order, nil
}

func (r *MemoryOrderRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = make(map[int64]domain.Order)
	r.nextID = 1
	return nil
}

func byID(a, b domain.Order) bool { return a.ID < b.ID }

func byCreatedAtDesc(a, b domain.Order) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (r *MemoryOrderRepository) filter(keep func(domain.Order) bool, less func(a, b domain.Order) bool) []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Order
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
