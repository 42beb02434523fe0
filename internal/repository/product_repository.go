package repository

import (
	"storefront-api/internal/domain"
)

type ProductRepository interface {
	Save(product *domain.Product) error
	FindByID(id uint64) (*domain.Product, error)
	// FindWithFilter returns one page of matching products plus the total
	// match count before pagination.
	FindWithFilter(filter domain.ProductFilter) ([]domain.Product, int64, error)
	Update(product *domain.Product) error
	UpdateRating(id uint64, rating float64) error
	Delete(id uint64) error
	Count() (int64, error)
}
