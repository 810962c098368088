package config

import (
	"errors"
	"fmt"
	"strings"
)

const DefaultCurrency = "gbp"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	Database Database `envPrefix:"DATABASE_"`
	Stripe   Stripe   `envPrefix:"STRIPE_"`
	Kafka    Kafka    `envPrefix:"KAFKA_"`
}

type Stripe struct {
	SecretKey     string `env:"SECRET_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
	// Currency is applied to every line item and payment intent.
	Currency           string `env:"CURRENCY" envDefault:"gbp"`
	APIURL             string `env:"API_URL"`
	IdempotentRequests bool   `env:"IDEMPOTENT_REQUESTS" envDefault:"true"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"`
	URL    string `env:"URL" envDefault:"restaurant.db"`
}

type Kafka struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"payment-events"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

// Normalize lower-cases the currency code and falls back to DefaultCurrency when unset.
func (s *Stripe) Normalize() {
	s.Currency = strings.ToLower(strings.TrimSpace(s.Currency))
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
}

func (c *Config) Validate() error {
	if c.Stripe.SecretKey == "" {
		return errors.New("STRIPE_SECRET_KEY is required")
	}

	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}

	return nil
}
