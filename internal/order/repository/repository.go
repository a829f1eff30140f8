package repository

import (
	"context"
	"errors"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/order/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository is the persistence boundary for orders. Orders are
// never physically deleted; DeleteAll exists for test and reset use.
type OrderRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByCustomerEmail(ctx context.Context, email string) ([]domain.Order, error)
	FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	FindByProductID(ctx context.Context, productID int64) ([]domain.Order, error)
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	DeleteAll(ctx context.Context) error
}
