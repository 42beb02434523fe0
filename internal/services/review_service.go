package services

import (
	"context"

	"storefront-api/internal/domain"
	"storefront-api/internal/repository"
)

type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

// PostReview creates or overwrites the user's review of the product, then
// recomputes the product's average rating from all its reviews.
func (s *ReviewService) PostReview(ctx context.Context, comment string, rating float64, userID, productID uint64) (*domain.Review, error) {
	if comment == "" || rating == 0 || userID == 0 || productID == 0 {
		return nil, ErrInvalidReview
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	review, err := s.reviews.FindByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		review = &domain.Review{UserID: userID, ProductID: productID}
	}
	review.Comment = comment
	review.Rating = rating

	if err := s.reviews.Save(review); err != nil {
		return nil, err
	}

	if err := s.refreshProductRating(productID); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) refreshProductRating(productID uint64) error {
	reviews, err := s.reviews.FindByProduct(productID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return nil
	}

	var total float64
	for _, r := range reviews {
		total += r.Rating
	}
	return s.products.UpdateRating(productID, total/float64(len(reviews)))
}

func (s *ReviewService) TotalReviews(ctx context.Context) (int64, error) {
	return s.reviews.Count()
}

func (s *ReviewService) GetReviewsByUser(ctx context.Context, userID uint64) ([]domain.Review, error) {
	reviews, err := s.reviews.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, ErrReviewNotFound
	}
	return reviews, nil
}
