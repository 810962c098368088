package dto

import "restaurant-ordering-api/internal/model"

type CheckoutSessionRequest struct {
	model.OrderData
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type PaymentIntentRequest struct {
	model.OrderData
}

type PaymentIntentResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	Status          string `json:"status"`
}
