package service

import (
	"context"
	"errors"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/domain"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/repository"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type ProductService struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

func NewProductService(productRepo repository.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetAllProducts returns active products only. Soft-deleted rows are
// excluded from every listing but remain reachable by id.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.FindAllActive(ctx)
}

func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) SearchByName(ctx context.Context, name string) ([]domain.Product, error) {
	return s.productRepo.FindByNameContaining(ctx, name)
}

func (s *ProductService) GetByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.productRepo.FindByCategory(ctx, category)
}

func (s *ProductService) GetInStockProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.FindInStock(ctx)
}

func (s *ProductService) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Active:      active,
	}

	created, err := s.productRepo.Save(ctx, product)
	if err != nil {
		s.logger.Error("Failed to save product",
			zap.String("name", req.Name),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created successfully",
		zap.Int64("product_id", created.ID),
		zap.Int("initial_stock", created.Stock))

	return created, nil
}

// UpdateProduct replaces all six mutable fields wholesale. Stock is
// written as-is on this path; the non-negativity guard applies only to
// the delta-based AdjustStock.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Stock = req.Stock
	product.Category = req.Category
	product.Active = req.Active

	updated, err := s.productRepo.Save(ctx, product)
	if err != nil {
		s.logger.Error("Failed to update product",
			zap.Int64("product_id", id),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product updated successfully", zap.Int64("product_id", id))
	return updated, nil
}

// DeleteProduct clears the active flag; the row is kept. Repeated calls
// succeed and leave the flag false.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	product.Active = false
	if _, err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to soft delete product",
			zap.Int64("product_id", id),
			zap.Error(err))
		return err
	}

	s.logger.Info("Product soft deleted", zap.Int64("product_id", id))
	return nil
}

// AdjustStock applies a relative delta to the current stock. A negative
// delta is a deduction, a positive one a replenishment. The adjustment
// is rejected when it would drive stock below zero.
func (s *ProductService) AdjustStock(ctx context.Context, id int64, delta int) (*domain.StockAdjustmentResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	previousStock := product.Stock
	newStock := previousStock + delta
	if newStock < 0 {
		s.logger.Warn("Stock adjustment rejected",
			zap.Int64("product_id", id),
			zap.Int("current_stock", previousStock),
			zap.Int("adjustment", delta))
		return &domain.StockAdjustmentResponse{
			ProductID:     id,
			PreviousStock: previousStock,
			NewStock:      previousStock,
			Adjustment:    delta,
		}, ErrInsufficientStock
	}

	product.Stock = newStock
	if _, err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to adjust stock",
			zap.Int64("product_id", id),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Stock adjusted successfully",
		zap.Int64("product_id", id),
		zap.Int("previous_stock", previousStock),
		zap.Int("adjustment", delta),
		zap.Int("new_stock", newStock))

	return &domain.StockAdjustmentResponse{
		ProductID:     id,
		PreviousStock: previousStock,
		NewStock:      newStock,
		Adjustment:    delta,
	}, nil
}
