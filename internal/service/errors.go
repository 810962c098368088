package service

import "errors"

// Gateway failures are reported with these stable errors. The gateway's own error is
// logged and never returned to callers.
var (
	ErrPaymentSessionCreationFailed = errors.New("payment session creation failed")
	ErrPaymentIntentCreationFailed  = errors.New("payment intent creation failed")
	ErrSessionVerificationFailed    = errors.New("session verification failed")
	ErrPaymentIntentCheckFailed     = errors.New("payment check failed")

	ErrInvalidWebhook = errors.New("invalid webhook")
)
