package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrEmptyCart is returned by PlaceOrder when the user has nothing to
	// check out.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCartConflict is returned when a concurrent checkout consumed the
	// cart rows between read and delete. The transaction is rolled back.
	ErrCartConflict = errors.New("cart changed during checkout")
	// ErrStatusConflict is returned when an order status update lost a
	// race with another transition.
	ErrStatusConflict = errors.New("order status changed concurrently")
)

type GormRepo struct {
	DB *gorm.DB
}
