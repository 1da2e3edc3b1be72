package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/dkuznetsov/trendy_store/internal/middleware/auth"
)

type Deps struct {
	Auth            *authmw.Middleware
	CategoryHandler *CategoryHTTP
	ProductHandler  *ProductHTTP
	CartHandler     *CartHTTP
	OrderHandler    *OrderHTTP
	EmailHandler    *EmailHTTP
	SearchHandler   *SearchHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	categories := v1.Group("/categories")
	categories.GET("", d.CategoryHandler.GetCategories)
	categories.GET("/:id", d.CategoryHandler.GetCategory)
	categories.POST("", d.CategoryHandler.CreateCategory, d.Auth.RequireAdmin)
	categories.PATCH("/:id", d.CategoryHandler.PatchCategory, d.Auth.RequireAdmin)
	categories.DELETE("/:id", d.CategoryHandler.DeleteCategory, d.Auth.RequireAdmin)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.SearchHandler.SearchProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, d.Auth.RequireAdmin)
	products.PATCH("/:id", d.ProductHandler.PatchProduct, d.Auth.RequireAdmin)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, d.Auth.RequireAdmin)
	products.POST("/:id/alert-low-stock", d.ProductHandler.AlertLowStock, d.Auth.RequireAdmin)

	cart := v1.Group("/cart", d.Auth.RequireUser)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.DELETE("/:productID", d.CartHandler.RemoveFromCart)

	orders := v1.Group("/orders", d.Auth.RequireUser)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.GetOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.PATCH("/:id", d.OrderHandler.UpdateOrderStatus, d.Auth.RequireAdmin)

	v1.POST("/emails", d.EmailHandler.SendBulkEmail, d.Auth.RequireAdmin)
}
