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
)

type OrderService struct {
	Repo  *repo.GormRepo
	Queue notify.Queue
}

// PlaceOrder converts the caller's cart into an order. The repo runs the
// whole conversion in one transaction; the confirmation job is scheduled
// only after the commit and its failure never reaches the caller.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint) (*models.Order, error) {
	order, err := s.Repo.PlaceOrder(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEmptyCart), errors.Is(err, repo.ErrCartConflict):
			// A concurrent checkout that consumed the cart first leaves
			// this one with nothing to order.
			return nil, fmt.Errorf("%w: no items in cart", ErrEmptyCart)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("product no longer exists: %w", ErrNotFound)
		default:
			return nil, fmt.Errorf("place order: %w", err)
		}
	}

	payload := notify.OrderConfirmationPayload{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount.StringFixed(2),
		Status:      string(order.Status),
	}
	if err := s.Queue.Enqueue(ctx, notify.KindOrderConfirmation, payload); err != nil {
		logging.FromContext(ctx).Warn("order_confirmation_enqueue_failed",
			"order_id", order.ID, "error", err)
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id, userID uint, isAdmin bool) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, fmt.Errorf("order %d: %w", id, ErrForbidden)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint, isAdmin bool) ([]models.Order, error) {
	if isAdmin {
		return s.Repo.ListAllOrders(ctx)
	}
	return s.Repo.ListOrders(ctx, userID)
}

// UpdateStatus applies one edge of the order status machine. Only called
// from admin-gated handlers.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot transition %s -> %s", ErrValidation, order.Status, next)
	}

	if err := s.Repo.UpdateOrderStatus(ctx, id, order.Status, next); err != nil {
		if errors.Is(err, repo.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: order status changed, retry", ErrValidation)
		}
		return nil, err
	}
	order.Status = next
	return order, nil
}
