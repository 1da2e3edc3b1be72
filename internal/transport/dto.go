package transport

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type PatchCategoryRequest struct {
	Name *string `json:"name"`
}

type CreateProductRequest struct {
	Name       string          `json:"name"`
	CategoryID uint            `json:"category_id"`
	Price      decimal.Decimal `json:"price"`
	ImageLink  string          `json:"image_link"`
	IsTrending bool            `json:"is_trending"`
}

type PatchProductRequest struct {
	Name       *string          `json:"name"`
	CategoryID *uint            `json:"category_id"`
	Price      *decimal.Decimal `json:"price"`
	ImageLink  *string          `json:"image_link"`
	IsTrending *bool            `json:"is_trending"`
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CartLineResponse struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	ImageLink   string          `json:"image_link"`
	Quantity    uint            `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type BulkEmailRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}
