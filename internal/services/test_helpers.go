package services

import (
	"time"

	"storefront-api/internal/domain"
	"storefront-api/internal/infra/stripe"
)

const (
	TestSessionID = "cs_test_a1b2c3"
	TestIntentID  = "pi_3MtwBwLkdIwHu7ix28a3tqPa"
	TestEmail     = "customer@example.com"
)

func NewTestSession(intentStatus string, amountTotal int64, items ...stripe.SessionLineItem) *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:            TestSessionID,
		AmountTotal:   amountTotal,
		CustomerEmail: TestEmail,
		PaymentIntent: stripe.PaymentIntent{ID: TestIntentID, Status: intentStatus},
		LineItems:     items,
	}
}

func NewTestOrder(id uint64, orderID string, amount float64, email string, status domain.OrderStatus, items ...domain.OrderItem) *domain.Order {
	return &domain.Order{
		ID:        id,
		OrderID:   orderID,
		Amount:    amount,
		Email:     email,
		Status:    status,
		Items:     items,
		CreatedAt: time.Now(),
	}
}
