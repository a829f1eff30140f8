package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

// ParseOrderStatus validates a caller-supplied status value.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
		OrderStatusRefunded:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status: %q", s)
}

type Order struct {
	ID              int64       `json:"id"`
	ProductID       int64       `json:"product_id"`
	Quantity        int         `json:"quantity"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `json:"status"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerName    string      `json:"customer_name"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// CreateOrderRequest carries an optional status field so that clients
// sending one are not rejected, but the service always persists new
// orders as PENDING regardless of its value.
type CreateOrderRequest struct {
	ProductID       int64   `json:"product_id" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required,min=1"`
	TotalAmount     float64 `json:"total_amount" binding:"gte=0"`
	Status          string  `json:"status"`
	CustomerEmail   string  `json:"customer_email" binding:"required,email"`
	CustomerName    string  `json:"customer_name" binding:"required"`
	ShippingAddress string  `json:"shipping_address"`
	Notes           string  `json:"notes"`
}
