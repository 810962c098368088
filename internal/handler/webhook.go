package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"restaurant-ordering-api/internal/service"

	"github.com/labstack/echo/v4"
)

// Stripe event payloads are far smaller than this.
const maxWebhookBodyBytes = 1 << 20

type WebhookHandler struct {
	webhookService service.WebhookService
}

func NewWebhookHandler(webhookService service.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
	}
}

func (h *WebhookHandler) StripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBodyBytes))
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	err = h.webhookService.HandleWebhook(ctx, body, c.Request().Header.Get("Stripe-Signature"))
	if errors.Is(err, service.ErrInvalidWebhook) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return fmt.Errorf("handle webhook: %w", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "received"})
}
