package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const OrderTypeDelivery = "DELIVERY"

// OrderData is the checkout input received from the ordering frontend.
type OrderData struct {
	OrderID  string          `json:"orderId"`
	Items    []LineItemInput `json:"items"`
	Customer Customer        `json:"customer"`
	Summary  OrderSummary    `json:"summary"`
}

type LineItemInput struct {
	ID          ItemID  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"` // currency units
	Quantity    int64   `json:"quantity"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type OrderSummary struct {
	OrderType   string   `json:"orderType"` // DELIVERY or anything else
	Total       float64  `json:"total"`
	DeliveryFee float64  `json:"deliveryFee"`
	Tip         float64  `json:"tip"`
	Location    Location `json:"location"`
}

type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemID accepts both JSON strings and JSON numbers, menu ids arrive in either form.
type ItemID string

func (id *ItemID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("item id must be a string or number: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}
