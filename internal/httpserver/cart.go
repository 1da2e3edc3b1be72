package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dkuznetsov/trendy_store/internal/logging"
	authmw "github.com/dkuznetsov/trendy_store/internal/middleware/auth"
	"github.com/dkuznetsov/trendy_store/internal/repo"
	"github.com/dkuznetsov/trendy_store/internal/service"
	"github.com/dkuznetsov/trendy_store/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func cartLineResponse(line repo.CartLine) transport.CartLineResponse {
	return transport.CartLineResponse{
		ID:          line.ID,
		ProductID:   line.ProductID,
		ProductName: line.ProductName,
		Price:       line.Price,
		ImageLink:   line.ImageLink,
		Quantity:    line.Quantity,
		TotalPrice:  line.TotalPrice(),
		CreatedAt:   line.CreatedAt,
	}
}

// GetCart lists the caller's cart. With ?product=<id> it returns the
// single matching line or 404. Always scoped to the authenticated user.
func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	if v := c.QueryParam("product"); v != "" {
		productID, err := strconv.Atoi(v)
		if err != nil || productID <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid product filter")
		}
		line, err := h.Svc.GetCartItem(ctx, userID, uint(productID))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				l.Warn("get_cart_item_error", "status", 404, "error", err)
				return echo.NewHTTPError(http.StatusNotFound, "no cart item found for the specified product")
			}
			l.Error("get_cart_item_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot read cart")
		}
		return c.JSON(http.StatusOK, cartLineResponse(*line))
	}

	lines, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read cart")
	}

	resp := make([]transport.CartLineResponse, 0, len(lines))
	for _, line := range lines {
		resp = append(resp, cartLineResponse(line))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddToCart(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_cart_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		default:
			l.Error("add_to_cart_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot add to cart")
		}
	}

	l.Info("add_to_cart_success", "product_id", item.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	productID, err := strconv.Atoi(c.Param("productID"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.RemoveItem(ctx, userID, uint(productID)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("remove_from_cart_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove item")
	}

	l.Info("remove_from_cart_success", "product_id", productID)
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot clear cart")
	}

	l.Info("clear_cart_success")
	return c.NoContent(http.StatusNoContent)
}
