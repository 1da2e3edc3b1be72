package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dkuznetsov/trendy_store/internal/logging"
	"github.com/dkuznetsov/trendy_store/internal/service"
	"github.com/dkuznetsov/trendy_store/internal/transport"
)

type EmailHTTP struct {
	Svc *service.CatalogService
}

// SendBulkEmail schedules a broadcast to all users through the
// notification channel. 202: accepted, delivery is best effort.
func (h *EmailHTTP) SendBulkEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "email.bulk")

	var req transport.BulkEmailRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("bulk_email_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.SendBulkEmail(ctx, req); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("bulk_email_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "both subject and message are required")
		}
		l.Error("bulk_email_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot send bulk email")
	}

	l.Info("bulk_email_accepted")
	return c.JSON(http.StatusAccepted, map[string]string{"message": "Bulk email sending initiated"})
}
