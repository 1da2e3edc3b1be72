package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name       string          `gorm:"not null"                    json:"name"`
	CategoryID uint            `gorm:"index;not null"              json:"category_id"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	ImageLink  string          `json:"image_link"`
	IsTrending bool            `gorm:"default:false"               json:"is_trending"`
	CreatedAt  time.Time       `json:"created_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                   json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"product_id"`
	Quantity  uint      `gorm:"not null;check:quantity>0"                  json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID      uint            `gorm:"index;not null"              json:"user_id"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Status      OrderStatus     `gorm:"not null"                    json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID"          json:"items"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"  json:"id"`
	OrderID   uint `gorm:"index;not null"            json:"order_id"`
	ProductID uint `gorm:"not null"                  json:"product_id"`
	Quantity  uint `gorm:"not null;check:quantity>0" json:"quantity"`
	// Price is the per-unit price at the moment the order was placed,
	// never recomputed from the live product.
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
}
