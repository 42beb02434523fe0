package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusCompleted  OrderStatus = "completed"
	StatusFailed     OrderStatus = "failed"
)

// ValidStatus reports whether s is a member of the order status enum.
// "failed" is first-class: reconciliation assigns it whenever the payment
// intent did not succeed.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Order is one reconciled purchase. OrderID is the payment gateway's
// payment-intent identifier and carries a unique index: at most one row
// exists per intent, which makes confirmation idempotent.
type Order struct {
	ID        uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   string      `json:"orderId" gorm:"uniqueIndex;size:191;not null"`
	Amount    float64     `json:"amount" gorm:"not null"`
	Email     string      `json:"email" gorm:"not null;index"`
	Status    OrderStatus `json:"status" gorm:"type:enum('pending','processing','shipped','completed','failed');default:'pending'"`
	Items     []OrderItem `json:"products" gorm:"foreignKey:OrderDBID"`
	CreatedAt time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`
}

// OrderItem is one purchased line. ProductID is the gateway's product
// reference from the session line item. Immutable once written.
type OrderItem struct {
	ID        uint64 `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderDBID uint64 `json:"-" gorm:"not null;index"`
	ProductID string `json:"productId" gorm:"size:191;not null"`
	Quantity  int64  `json:"quantity" gorm:"not null"`
}

// CartItem is what the storefront sends when opening a checkout session.
// Price is in major currency units.
type CartItem struct {
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// MonthlyEarning is one (year, month) revenue bucket over the orders table.
type MonthlyEarning struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}
