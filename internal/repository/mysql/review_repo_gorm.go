package mysql

import (
	"errors"
	"log"

	"storefront-api/internal/domain"
	"storefront-api/internal/repository"

	"gorm.io/gorm"
)

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Save(review *domain.Review) error {
	if err := r.db.Save(review).Error; err != nil {
		log.Printf("Save review error: %v", err)
		return err
	}
	return nil
}

func (r *reviewRepo) FindByUserAndProduct(userID, productID uint64) (*domain.Review, error) {
	var rev domain.Review
	if err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&rev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rev, nil
}

func (r *reviewRepo) FindByProduct(productID uint64) ([]domain.Review, error) {
	var out []domain.Review
	if err := r.db.Where("product_id = ?", productID).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Printf("FindByProduct reviews error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *reviewRepo) FindByUser(userID uint64) ([]domain.Review, error) {
	var out []domain.Review
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Printf("FindByUser reviews error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *reviewRepo) CountByUser(userID uint64) (int64, error) {
	var n int64
	if err := r.db.Model(&domain.Review{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *reviewRepo) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&domain.Review{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *reviewRepo) DeleteByProduct(productID uint64) error {
	return r.db.Where("product_id = ?", productID).Delete(&domain.Review{}).Error
}
