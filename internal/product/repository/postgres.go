package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/domain"
)

const productColumns = `id, name, description, price, stock, category, active, created_at, updated_at`

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.Category, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to query product %d: %w", id, err)
	}
	return &p, nil
}

func (r *PostgresProductRepository) FindAllActive(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE active = TRUE ORDER BY id`
	return r.queryProducts(ctx, query)
}

func (r *PostgresProductRepository) FindByNameContaining(ctx context.Context, name string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name ILIKE $1 ORDER BY id`
	return r.queryProducts(ctx, query, "%"+name+"%")
}

func (r *PostgresProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE LOWER(category) = LOWER($1) ORDER BY id`
	return r.queryProducts(ctx, query, category)
}

func (r *PostgresProductRepository) FindInStock(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock > 0 AND active = TRUE ORDER BY id`
	return r.queryProducts(ctx, query)
}

func (r *PostgresProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	now := time.Now()
	product.UpdatedAt = now

	if product.ID == 0 {
		product.CreatedAt = now
		query := `
			INSERT INTO products (name, description, price, stock, category, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`
		err := r.db.QueryRowContext(ctx, query,
			product.Name, product.Description, product.Price, product.Stock,
			product.Category, product.Active, product.CreatedAt, product.UpdatedAt,
		).Scan(&product.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert product: %w", err)
		}
		return product, nil
	}

	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5,
		    category = $6, active = $7, updated_at = $8
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.Stock, product.Category, product.Active, product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (r *PostgresProductRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}
	return nil
}

func (r *PostgresProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.Category, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}
