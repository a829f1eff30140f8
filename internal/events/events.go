package events

import (
	"time"
)

// OrderCreatedEvent is published by the order service after an order is
// persisted and consumed by the product service to deduct stock.
type OrderCreatedEvent struct {
	EventID       string    `json:"event_id"`
	OrderID       int64     `json:"order_id"`
	ProductID     int64     `json:"product_id"`
	Quantity      int       `json:"quantity"`
	TotalAmount   float64   `json:"total_amount"`
	CustomerEmail string    `json:"customer_email"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	RequestID     string    `json:"request_id"`
}

const OrderEventsTopic = "order-events"
