package repository

import (
	"storefront-api/internal/domain"
)

type OrderRepository interface {
	// Upsert inserts the order or, when a row with the same OrderID already
	// exists, updates its status only. Executed as one atomic store
	// operation so concurrent confirmations cannot produce two rows.
	Upsert(order *domain.Order) error
	FindByOrderID(orderID string) (*domain.Order, error)
	FindByID(id uint64) (*domain.Order, error)
	FindByEmail(email string) ([]domain.Order, error)
	FindAll() ([]domain.Order, error)
	UpdateStatus(id uint64, status domain.OrderStatus) (*domain.Order, error)
	Delete(id uint64) (*domain.Order, error)
	Count() (int64, error)
	SumAmount() (float64, error)
	MonthlyEarnings() ([]domain.MonthlyEarning, error)
}
