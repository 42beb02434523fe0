package domain

import "time"

type OrderConfirmedEvent struct {
	OrderID string      `json:"orderId"`
	Email   string      `json:"email"`
	Amount  float64     `json:"amount"`
	Status  OrderStatus `json:"status"`
	At      time.Time   `json:"at"`
}

type OrderStatusUpdatedEvent struct {
	ID     uint64      `json:"id"`
	Status OrderStatus `json:"status"`
	At     time.Time   `json:"at"`
}
