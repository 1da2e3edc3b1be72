package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dkuznetsov/trendy_store/internal/logging"
	"github.com/dkuznetsov/trendy_store/internal/models"
	"github.com/dkuznetsov/trendy_store/internal/notify"
	"github.com/dkuznetsov/trendy_store/internal/repo"
	"github.com/dkuznetsov/trendy_store/internal/transport"
)

type CatalogService struct {
	Repo  *repo.GormRepo
	Queue notify.Queue
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	return s.Repo.CreateCategory(ctx, &models.Category{Name: req.Name})
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return cat, err
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.GetCategories(ctx)
}

func (s *CatalogService) PatchCategory(ctx context.Context, id uint, req transport.PatchCategoryRequest) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name required", ErrValidation)
		}
		cat.Name = *req.Name
	}
	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.Repo.DeleteCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return err
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return prod, err
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.ListProducts(ctx, f, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be > 0", ErrValidation)
	}
	if _, err := s.Repo.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", req.CategoryID, ErrNotFound)
		}
		return nil, err
	}

	prod := &models.Product{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		ImageLink:  req.ImageLink,
		IsTrending: req.IsTrending,
	}
	if _, err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, err
	}
	s.enqueueIndex(ctx, *prod)
	return prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name required", ErrValidation)
		}
		prod.Name = *req.Name
	}
	if req.CategoryID != nil {
		if _, err := s.Repo.GetCategory(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("category %d: %w", *req.CategoryID, ErrNotFound)
			}
			return nil, err
		}
		prod.CategoryID = *req.CategoryID
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price must be > 0", ErrValidation)
		}
		prod.Price = *req.Price
	}
	if req.ImageLink != nil {
		prod.ImageLink = *req.ImageLink
	}
	if req.IsTrending != nil {
		prod.IsTrending = *req.IsTrending
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		return nil, err
	}
	s.enqueueIndex(ctx, *prod)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if err := s.Queue.Enqueue(ctx, notify.KindDeindexProduct, notify.DeindexProductPayload{ProductID: id}); err != nil {
		logging.FromContext(ctx).Warn("deindex_enqueue_failed", "product_id", id, "error", err)
	}
	return nil
}

// AlertLowStock asks the notification channel to warn operators about a
// product. Best effort, the endpoint answers 200 either way.
func (s *CatalogService) AlertLowStock(ctx context.Context, productID uint) error {
	prod, err := s.Repo.GetProduct(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return err
	}
	payload := notify.LowStockPayload{ProductID: prod.ID, Name: prod.Name}
	if err := s.Queue.Enqueue(ctx, notify.KindLowStockAlert, payload); err != nil {
		logging.FromContext(ctx).Warn("low_stock_enqueue_failed", "product_id", productID, "error", err)
	}
	return nil
}

func (s *CatalogService) SendBulkEmail(ctx context.Context, req transport.BulkEmailRequest) error {
	if req.Subject == "" || req.Message == "" {
		return fmt.Errorf("%w: subject and message required", ErrValidation)
	}
	payload := notify.BulkEmailPayload{Subject: req.Subject, Message: req.Message}
	if err := s.Queue.Enqueue(ctx, notify.KindBulkEmail, payload); err != nil {
		logging.FromContext(ctx).Warn("bulk_email_enqueue_failed", "error", err)
	}
	return nil
}

func (s *CatalogService) enqueueIndex(ctx context.Context, prod models.Product) {
	if err := s.Queue.Enqueue(ctx, notify.KindIndexProduct, prod); err != nil {
		logging.FromContext(ctx).Warn("index_enqueue_failed", "product_id", prod.ID, "error", err)
	}
}
