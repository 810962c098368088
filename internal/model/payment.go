package model

import "time"

// GatewayLineItem is one priced line on the hosted checkout page.
// UnitAmount is in minor currency units.
type GatewayLineItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ProductID   string `json:"productId,omitempty"`
	Currency    string `json:"currency"`
	UnitAmount  int64  `json:"unitAmount"`
	Quantity    int64  `json:"quantity"`
}

type SessionMetadata struct {
	OrderID        string `json:"orderId"`
	RestaurantID   string `json:"restaurantId"`
	RestaurantName string `json:"restaurantName"`
	OrderType      string `json:"orderType"`
	CustomerName   string `json:"customerName"`
	CustomerPhone  string `json:"customerPhone"`
}

type IntentMetadata struct {
	OrderID       string `json:"orderId"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
}

type CheckoutSessionRequest struct {
	LineItems      []GatewayLineItem
	SuccessURL     string
	CancelURL      string
	CustomerEmail  string
	Metadata       SessionMetadata
	IdempotencyKey string
}

type PaymentIntentRequest struct {
	Amount         int64
	Currency       string
	Metadata       IntentMetadata
	IdempotencyKey string
}

// Checkout session payment statuses as reported by the gateway.
const (
	PaymentStatusPaid              = "paid"
	PaymentStatusUnpaid            = "unpaid"
	PaymentStatusNoPaymentRequired = "no_payment_required"
)

// Payment intent statuses as reported by the gateway.
const (
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
	IntentStatusRequiresConfirmation  = "requires_confirmation"
	IntentStatusRequiresAction        = "requires_action"
	IntentStatusProcessing            = "processing"
	IntentStatusSucceeded             = "succeeded"
	IntentStatusCanceled              = "canceled"
)

type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CheckoutSession struct {
	ID              string           `json:"id"`
	URL             string           `json:"url"`
	PaymentStatus   string           `json:"paymentStatus"`
	AmountTotal     int64            `json:"amountTotal"`
	Currency        string           `json:"currency"`
	CustomerDetails *CustomerDetails `json:"customerDetails"`
	Metadata        SessionMetadata  `json:"metadata"`
}

type PaymentIntent struct {
	ID           string         `json:"id"`
	Status       string         `json:"status"`
	Amount       int64          `json:"amount"`
	Currency     string         `json:"currency"`
	ClientSecret string         `json:"clientSecret,omitempty"`
	Metadata     IntentMetadata `json:"metadata"`
}

type SessionVerification struct {
	PaymentStatus string           `json:"paymentStatus"`
	IsComplete    bool             `json:"isComplete"`
	Customer      *CustomerDetails `json:"customer"`
	OrderID       string           `json:"orderId"`
}

// PaymentIntentStatus reports Amount in currency units for display only.
type PaymentIntentStatus struct {
	Status    string         `json:"status"`
	IsSuccess bool           `json:"isSuccess"`
	Amount    float64        `json:"amount"`
	Customer  IntentMetadata `json:"customer"`
}

// GatewayEvent is a verified webhook notification reduced to what the relay needs.
type GatewayEvent struct {
	ID        string
	Type      string
	ObjectID  string
	OrderID   string
	Status    string
	Amount    int64
	Currency  string
	CreatedAt time.Time
}

// PaymentEvent is published for downstream order handling.
type PaymentEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"orderId"`
	GatewayID string    `json:"gatewayId"`
	Status    string    `json:"status"`
	Amount    int64     `json:"amount"` // minor units
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}
