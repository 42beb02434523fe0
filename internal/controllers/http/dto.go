package http

type CartItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Image    string  `json:"image"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Quantity int64   `json:"quantity" binding:"required,min=1"`
}

type CreateCheckoutSessionRequest struct {
	Products []CartItemRequest `json:"products" binding:"required,min=1,dive"`
}

type CreateCheckoutSessionResponse struct {
	ID string `json:"id"`
}

type ConfirmPaymentRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	OldPrice    float64 `json:"oldPrice"`
	Image       string  `json:"image"`
	Color       string  `json:"color"`
	AuthorID    uint64  `json:"authorId"`
}

type PostReviewRequest struct {
	Comment   string  `json:"comment" binding:"required"`
	Rating    float64 `json:"rating" binding:"required"`
	UserID    uint64  `json:"userId" binding:"required"`
	ProductID uint64  `json:"productId" binding:"required"`
}
