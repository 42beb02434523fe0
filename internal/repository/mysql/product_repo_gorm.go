package mysql

import (
	"errors"
	"log"

	"storefront-api/internal/domain"
	"storefront-api/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Save(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		log.Printf("Save product error: %v", err)
		return err
	}
	return nil
}

func (r *productRepo) FindByID(id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindByID product error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) filtered(filter domain.ProductFilter) *gorm.DB {
	q := r.db.Model(&domain.Product{})
	if filter.Category != "" && filter.Category != "all" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Color != "" && filter.Color != "all" {
		q = q.Where("color = ?", filter.Color)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price >= ? AND price <= ?", filter.MinPrice, filter.MaxPrice)
	}
	return q
}

func (r *productRepo) FindWithFilter(filter domain.ProductFilter) ([]domain.Product, int64, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	var out []domain.Product
	err := r.filtered(filter).Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		log.Printf("FindWithFilter error: %v", err)
		return nil, 0, err
	}
	return out, total, nil
}

func (r *productRepo) Update(product *domain.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		log.Printf("Update product error: %v", err)
		return err
	}
	return nil
}

func (r *productRepo) UpdateRating(id uint64, rating float64) error {
	return r.db.Model(&domain.Product{}).Where("id = ?", id).Update("rating", rating).Error
}

func (r *productRepo) Delete(id uint64) error {
	return r.db.Delete(&domain.Product{}, id).Error
}

func (r *productRepo) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&domain.Product{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
