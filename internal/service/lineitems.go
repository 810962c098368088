package service

import (
	"restaurant-ordering-api/internal/model"
	"restaurant-ordering-api/internal/money"
)

const (
	deliveryFeeName        = "Delivery Fee"
	deliveryFeeDescription = "Fee for delivery service"
	tipName                = "Tip"
	tipDescription         = "Gratuity for staff"
)

// BuildLineItems turns an order into priced gateway lines: the order items in their
// original order, then the delivery fee, then the tip. Amounts are in minor units.
func BuildLineItems(order *model.OrderData, currency string) []model.GatewayLineItem {
	lineItems := make([]model.GatewayLineItem, 0, len(order.Items)+2)

	for _, item := range order.Items {
		lineItems = append(lineItems, model.GatewayLineItem{
			Name:        item.Name,
			Description: item.Description,
			ProductID:   string(item.ID),
			Currency:    currency,
			UnitAmount:  money.ToMinorUnits(item.Price),
			Quantity:    item.Quantity,
		})
	}

	summary := order.Summary
	if summary.OrderType == model.OrderTypeDelivery && summary.DeliveryFee > 0 {
		lineItems = append(lineItems, model.GatewayLineItem{
			Name:        deliveryFeeName,
			Description: deliveryFeeDescription,
			Currency:    currency,
			UnitAmount:  money.ToMinorUnits(summary.DeliveryFee),
			Quantity:    1,
		})
	}

	if summary.Tip > 0 {
		lineItems = append(lineItems, model.GatewayLineItem{
			Name:        tipName,
			Description: tipDescription,
			Currency:    currency,
			UnitAmount:  money.ToMinorUnits(summary.Tip),
			Quantity:    1,
		})
	}

	return lineItems
}
