package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dkuznetsov/trendy_store/internal/models"
)

// CartLine is a cart row enriched with the product's live display fields.
type CartLine struct {
	models.CartItem
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	ImageLink   string          `json:"image_link"`
}

func (l CartLine) TotalPrice() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// UpsertItem adds the item or increments the existing row's quantity in a
// single statement, so concurrent adds for the same (user, product) never
// lose an update.
func (r *GormRepo) UpsertItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).Create(item).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			First(item).Error
	})
}

func (r *GormRepo) GetCart(ctx context.Context, userID uint) ([]CartLine, error) {
	lines := make([]CartLine, 0)
	err := r.DB.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.*, products.name AS product_name, products.price AS price, products.image_link AS image_link").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *GormRepo) GetCartItem(ctx context.Context, userID, productID uint) (*CartLine, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, item.ProductID).Error; err != nil {
		return nil, err
	}
	return &CartLine{
		CartItem:    item,
		ProductName: product.Name,
		Price:       product.Price,
		ImageLink:   product.ImageLink,
	}, nil
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, userID, productID uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
