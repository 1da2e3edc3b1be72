package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dkuznetsov/trendy_store/internal/logging"
	authmw "github.com/dkuznetsov/trendy_store/internal/middleware/auth"
	"github.com/dkuznetsov/trendy_store/internal/models"
	"github.com/dkuznetsov/trendy_store/internal/service"
	"github.com/dkuznetsov/trendy_store/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

// CreateOrder places an order from the caller's cart. The body is empty:
// the cart is the single source of line items and the user id comes from
// the token, never from the client.
func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	order, err := h.Svc.PlaceOrder(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			l.Warn("create_order_error", "status", 400, "reason", "empty cart", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "no items in cart")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("create_order_error", "status", 400, "reason", "product missing", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "product no longer exists")
		default:
			l.Error("create_order_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot place order")
		}
	}

	l.Info("create_order_success", "order_id", order.ID, "total", order.TotalAmount.StringFixed(2))
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	orders, err := h.Svc.ListOrders(ctx, userID, authmw.IsAdmin(c))
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.GetOrder(ctx, id, userID, authmw.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("get_order_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrForbidden):
			l.Warn("get_order_error", "status", 403, "error", err)
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		default:
			l.Error("get_order_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot get order")
		}
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus is registered behind the admin gate; a non-admin is
// rejected by the middleware before any mutation.
func (h *OrderHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, id, models.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_order_status_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_order_status_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("update_order_status_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update order")
		}
	}

	l.Info("update_order_status_success", "order_id", order.ID, "new_status", string(order.Status))
	return c.JSON(http.StatusOK, order)
}
