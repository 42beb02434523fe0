package repository

import (
	"storefront-api/internal/domain"
)

type ReviewRepository interface {
	Save(review *domain.Review) error
	FindByUserAndProduct(userID, productID uint64) (*domain.Review, error)
	FindByProduct(productID uint64) ([]domain.Review, error)
	FindByUser(userID uint64) ([]domain.Review, error)
	CountByUser(userID uint64) (int64, error)
	Count() (int64, error)
	DeleteByProduct(productID uint64) error
}
