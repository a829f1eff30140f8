package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/events"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/order/client"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/order/domain"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/order/repository"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/pkg/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotCancellable = errors.New("order cannot be cancelled")
)

// OrderEventPublisher publishes order lifecycle events. A nil publisher
// disables event publishing entirely.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event events.OrderCreatedEvent) error
}

type OrderService struct {
	orderRepo repository.OrderRepository
	// productClient is kept as a wired collaborator for future product
	// lookups; no current order operation calls it.
	productClient *client.ProductClient
	publisher     OrderEventPublisher
	logger        *zap.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, productClient *client.ProductClient, publisher OrderEventPublisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		productClient: productClient,
		publisher:     publisher,
		logger:        logger,
	}
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *OrderService) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetOrdersByCustomer(ctx context.Context, email string) ([]domain.Order, error) {
	return s.orderRepo.FindByCustomerEmail(ctx, email)
}

func (s *OrderService) GetOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return s.orderRepo.FindByStatus(ctx, status)
}

// CreateOrder persists a new order with status PENDING. Any status the
// caller supplies in the request is discarded.
func (s *OrderService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	order := &domain.Order{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		TotalAmount:     req.TotalAmount,
		Status:          domain.OrderStatusPending,
		CustomerEmail:   req.CustomerEmail,
		CustomerName:    req.CustomerName,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}

	created, err := s.orderRepo.Save(ctx, order)
	if err != nil {
		s.logger.Error("Failed to save order",
			zap.String("customer_email", req.CustomerEmail),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order created successfully",
		zap.Int64("order_id", created.ID),
		zap.Int64("product_id", created.ProductID),
		zap.String("customer_email", created.CustomerEmail))

	s.publishOrderCreated(ctx, created)

	return created, nil
}

// publishOrderCreated is best effort: a publish failure is logged and
// never fails the request that created the order.
func (s *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}

	event := events.OrderCreatedEvent{
		EventID:       uuid.New().String(),
		OrderID:       order.ID,
		ProductID:     order.ProductID,
		Quantity:      order.Quantity,
		TotalAmount:   order.TotalAmount,
		CustomerEmail: order.CustomerEmail,
		Status:        string(order.Status),
		Timestamp:     time.Now(),
		RequestID:     middleware.RequestIDFromContext(ctx),
	}

	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish order created event",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}
}

// UpdateOrderStatus overwrites the status unconditionally. Any status
// may follow any other; only CancelOrder carries a transition guard.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int64, newStatus domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.Status = newStatus
	updated, err := s.orderRepo.Save(ctx, order)
	if err != nil {
		s.logger.Error("Failed to update order status",
			zap.Int64("order_id", id),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.Int64("order_id", id),
		zap.String("status", string(newStatus)))

	return updated, nil
}

// CancelOrder sets the status to CANCELLED unless the order has already
// shipped or been delivered, in which case nothing is mutated.
func (s *OrderService) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.Status == domain.OrderStatusShipped || order.Status == domain.OrderStatusDelivered {
		s.logger.Warn("Cancel rejected",
			zap.Int64("order_id", id),
			zap.String("status", string(order.Status)))
		return nil, fmt.Errorf("%w: order is already %s", ErrOrderNotCancellable, order.Status)
	}

	order.Status = domain.OrderStatusCancelled
	updated, err := s.orderRepo.Save(ctx, order)
	if err != nil {
		s.logger.Error("Failed to cancel order",
			zap.Int64("order_id", id),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order cancelled", zap.Int64("order_id", id))
	return updated, nil
}
