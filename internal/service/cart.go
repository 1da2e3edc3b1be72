package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dkuznetsov/trendy_store/internal/models"
	"github.com/dkuznetsov/trendy_store/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

// AddToCart creates the cart line or increments the existing one. The
// upsert is a single atomic statement in the repo, so concurrent adds for
// the same (user, product) always sum up.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  uint(quantity),
	}
	if err := s.Repo.UpsertItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]repo.CartLine, error) {
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) GetCartItem(ctx context.Context, userID, productID uint) (*repo.CartLine, error) {
	line, err := s.Repo.GetCartItem(ctx, userID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no cart item for product %d: %w", productID, ErrNotFound)
	}
	return line, err
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) error {
	err := s.Repo.DeleteCartItem(ctx, userID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("no cart item for product %d: %w", productID, ErrNotFound)
	}
	return err
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}
