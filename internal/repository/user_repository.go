package repository

import (
	"storefront-api/internal/domain"
)

type UserRepository interface {
	FindByEmail(email string) (*domain.User, error)
	FindAll() ([]domain.User, error)
	Count() (int64, error)
}
