package stripe

import "context"

type GatewayInterface interface {
	CreateCheckoutSession(ctx context.Context, items []LineItem) (*CheckoutSession, error)
	RetrieveCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

var _ GatewayInterface = (*Client)(nil)
