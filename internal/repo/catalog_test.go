package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dkuznetsov/trendy_store/internal/models"
)

func TestListProductsFilters(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	electronics := models.Category{Name: "electronics"}
	clothing := models.Category{Name: "clothing"}
	require.NoError(t, r.DB.Create(&electronics).Error)
	require.NoError(t, r.DB.Create(&clothing).Error)

	mk := func(name string, cat uint, trending bool) {
		require.NoError(t, r.DB.Create(&models.Product{
			Name:       name,
			CategoryID: cat,
			Price:      decimal.RequireFromString("10.00"),
			IsTrending: trending,
		}).Error)
	}
	mk("red phone", electronics.ID, true)
	mk("blue phone", electronics.ID, false)
	mk("red shirt", clothing.ID, true)

	total, items, err := r.ListProducts(ctx, ProductFilter{}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, items, 3)

	total, items, err = r.ListProducts(ctx, ProductFilter{Name: "phone"}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, items, 2)

	total, _, err = r.ListProducts(ctx, ProductFilter{CategoryID: &clothing.ID}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	trending := true
	total, _, err = r.ListProducts(ctx, ProductFilter{IsTrending: &trending}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	total, items, err = r.ListProducts(ctx, ProductFilter{Name: "red", CategoryID: &electronics.ID, IsTrending: &trending}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "red phone", items[0].Name)
}

func TestListProductsPagination(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedProduct(t, r.DB, "item", "1.00")
	}

	total, items, err := r.ListProducts(ctx, ProductFilter{}, 0, 2)
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, items, 2)

	_, items, err = r.ListProducts(ctx, ProductFilter{}, 4, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestDeleteProductNotFound(t *testing.T) {
	r := newTestRepo(t)
	err := r.DeleteProduct(context.Background(), 12345)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteCategoryNotFound(t *testing.T) {
	r := newTestRepo(t)
	err := r.DeleteCategory(context.Background(), 12345)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteProductRemovesCartRows(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	gone := seedProduct(t, r.DB, "delisted", "10.00")
	kept := seedProduct(t, r.DB, "kept", "5.00")

	require.NoError(t, r.UpsertItem(ctx, &models.CartItem{UserID: 1, ProductID: gone.ID, Quantity: 1}))
	require.NoError(t, r.UpsertItem(ctx, &models.CartItem{UserID: 1, ProductID: kept.ID, Quantity: 2}))

	require.NoError(t, r.DeleteProduct(ctx, gone.ID))

	// The delisted product's line is gone, no orphan row survives.
	lines, err := r.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, kept.ID, lines[0].ProductID)

	var orphans int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Where("product_id = ?", gone.ID).Count(&orphans).Error)
	require.Equal(t, int64(0), orphans)

	// Checkout proceeds with what is left in the cart.
	order, err := r.PlaceOrder(ctx, 1)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.True(t, decimal.RequireFromString("10.00").Equal(order.TotalAmount))
}
