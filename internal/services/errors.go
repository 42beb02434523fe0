package services

import "errors"

// Sentinels the HTTP layer maps onto status codes: validation errors to
// 400, not-found to 404, ErrGateway to 502. Anything else is a 500.
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrReviewNotFound    = errors.New("no reviews found")
	ErrEmptyCart         = errors.New("cart must contain at least one item")
	ErrInvalidCartItem   = errors.New("cart item needs a name, a positive price and quantity of at least 1")
	ErrSessionIDRequired = errors.New("session_id is required")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidReview     = errors.New("comment, rating, userId and productId are required")
	ErrGateway           = errors.New("payment gateway error")
)
