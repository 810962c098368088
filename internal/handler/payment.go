package handler

import (
	"errors"
	"net/http"
	"restaurant-ordering-api/internal/dto"
	"restaurant-ordering-api/internal/model"
	"restaurant-ordering-api/internal/service"
	"strings"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	baseURL        string
}

func NewPaymentHandler(paymentService service.PaymentService, baseURL string) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		baseURL:        strings.TrimRight(baseURL, "/"),
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := validateOrder(&req.OrderData); err != nil {
		return err
	}
	if req.Customer.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "customer email is required")
	}

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = h.baseURL + "/order/success"
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = h.baseURL + "/order/cancel"
	}

	sess, err := h.paymentService.CreateCheckoutSession(ctx, &req.OrderData, successURL, cancelURL)
	if err != nil {
		return gatewayError(err)
	}

	return c.JSON(http.StatusOK, &dto.CheckoutSessionResponse{
		SessionID: sess.ID,
		URL:       sess.URL,
	})
}

func (h *PaymentHandler) VerifyCheckoutSession(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := c.Param("sessionId")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session id")
	}

	result, err := h.paymentService.VerifyCheckoutSession(ctx, sessionID)
	if err != nil {
		return gatewayError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := validateOrder(&req.OrderData); err != nil {
		return err
	}
	if req.Summary.Total <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "order total must be positive")
	}

	pi, err := h.paymentService.CreatePaymentIntent(ctx, &req.OrderData)
	if err != nil {
		return gatewayError(err)
	}

	return c.JSON(http.StatusOK, &dto.PaymentIntentResponse{
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
		Status:          pi.Status,
	})
}

func (h *PaymentHandler) CheckPaymentIntentStatus(c echo.Context) error {
	ctx := c.Request().Context()

	paymentIntentID := c.Param("paymentIntentId")
	if paymentIntentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing payment intent id")
	}

	result, err := h.paymentService.CheckPaymentIntentStatus(ctx, paymentIntentID)
	if err != nil {
		return gatewayError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// validateOrder rejects obviously broken input before anything is priced.
func validateOrder(order *model.OrderData) error {
	if order.OrderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "orderId is required")
	}
	if len(order.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "order has no items")
	}
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "item quantity must be positive")
		}
		if item.Price < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "item price must not be negative")
		}
	}
	if order.Summary.DeliveryFee < 0 || order.Summary.Tip < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "fees must not be negative")
	}
	return nil
}

func gatewayError(err error) error {
	switch {
	case errors.Is(err, service.ErrPaymentSessionCreationFailed),
		errors.Is(err, service.ErrPaymentIntentCreationFailed),
		errors.Is(err, service.ErrSessionVerificationFailed),
		errors.Is(err, service.ErrPaymentIntentCheckFailed):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return err
	}
}
