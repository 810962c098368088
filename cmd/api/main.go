package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"restaurant-ordering-api/internal/client"
	"restaurant-ordering-api/internal/config"
	"restaurant-ordering-api/internal/events"
	"restaurant-ordering-api/internal/logger"
	"restaurant-ordering-api/internal/repository"
	"restaurant-ordering-api/internal/server"
	"restaurant-ordering-api/internal/service"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}
	cfg.Stripe.Normalize()

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config", zap.Error(err))
	}

	db, err := client.InitDBClient(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to init database", zap.Error(err))
	}
	stripeClient := client.NewStripeClient(&cfg.Stripe)

	var producer events.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = events.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	} else {
		log.Info("KAFKA_BROKERS not set, payment events will only be logged")
		producer = events.NewLogProducer(log)
	}
	defer producer.Close()

	webhookEventRepo := repository.NewWebhookEventRepository(db)

	paymentService := service.NewPaymentService(stripeClient, cfg.Stripe, log)
	webhookService := service.NewWebhookService(stripeClient, webhookEventRepo, producer, log)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(paymentService, webhookService, cfg.BaseURL, log)

	log.Info("Starting HTTP server",
		zap.String("addr", serverAddr),
		zap.String("environment", cfg.Environment.Name),
		zap.String("currency", cfg.Stripe.Currency),
	)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
}
