package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/order/domain"
)

const orderColumns = `id, product_id, quantity, total_amount, status,
	customer_email, customer_name, shipping_address, notes, created_at, updated_at`

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func (r *PostgresOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var o domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.ProductID, &o.Quantity, &o.TotalAmount, &o.Status,
		&o.CustomerEmail, &o.CustomerName, &o.ShippingAddress, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to query order %d: %w", id, err)
	}
	return &o, nil
}

func (r *PostgresOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY id`
	return r.queryOrders(ctx, query)
}

func (r *PostgresOrderRepository) FindByCustomerEmail(ctx context.Context, email string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_email = $1 ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, email)
}

func (r *PostgresOrderRepository) FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY id`
	return r.queryOrders(ctx, query, string(status))
}

func (r *PostgresOrderRepository) FindByProductID(ctx context.Context, productID int64) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE product_id = $1 ORDER BY id`
	return r.queryOrders(ctx, query, productID)
}

func (r *PostgresOrderRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	now := time.Now()
	order.UpdatedAt = now

	if order.ID == 0 {
		order.CreatedAt = now
		query := `
			INSERT INTO orders (product_id, quantity, total_amount, status,
				customer_email, customer_name, shipping_address, notes,
				created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`
		err := r.db.QueryRowContext(ctx, query,
			order.ProductID, order.Quantity, order.TotalAmount, string(order.Status),
			order.CustomerEmail, order.CustomerName, order.ShippingAddress,
			order.Notes, order.CreatedAt, order.UpdatedAt,
		).Scan(&order.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order: %w", err)
		}
		return order, nil
	}

	query := `
		UPDATE orders
		SET product_id = $2, quantity = $3, total_amount = $4, status = $5,
		    customer_email = $6, customer_name = $7, shipping_address = $8,
		    notes = $9, updated_at = $10
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		order.ID, order.ProductID, order.Quantity, order.TotalAmount,
		string(order.Status), order.CustomerEmail, order.CustomerName,
		order.ShippingAddress, order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", order.ID, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (r *PostgresOrderRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders`); err != nil {
		return fmt.Errorf("failed to delete orders: %w", err)
	}
	return nil
}

func (r *PostgresOrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(
			&o.ID, &o.ProductID, &o.Quantity, &o.TotalAmount, &o.Status,
			&o.CustomerEmail, &o.CustomerName, &o.ShippingAddress, &o.Notes,
			&o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}
