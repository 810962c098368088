package server

import (
	"context"
	"restaurant-ordering-api/internal/handler"
	"restaurant-ordering-api/internal/middleware"
	"restaurant-ordering-api/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo           *echo.Echo
	paymentHandler *handler.PaymentHandler
	webhookHandler *handler.WebhookHandler
}

func NewServer(paymentService service.PaymentService, webhookService service.WebhookService, baseURL string, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		paymentHandler: handler.NewPaymentHandler(paymentService, baseURL),
		webhookHandler: handler.NewWebhookHandler(webhookService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- orders / checkout --------
	orders := api.Group("/orders")
	orders.POST("/checkout-session", s.paymentHandler.CreateCheckoutSession)
	orders.GET("/checkout-session/:sessionId", s.paymentHandler.VerifyCheckoutSession)
	orders.POST("/payment-intent", s.paymentHandler.CreatePaymentIntent)
	orders.GET("/payment-intent/:paymentIntentId", s.paymentHandler.CheckPaymentIntentStatus)

	// -------- gateway callbacks --------
	payments := api.Group("/payments")
	payments.POST("/webhook", s.webhookHandler.StripeWebhook)
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
