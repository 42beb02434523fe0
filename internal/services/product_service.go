package services

import (
	"context"

	"storefront-api/internal/domain"
	"storefront-api/internal/repository"
)

type ProductService struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
}

func NewProductService(products repository.ProductRepository, reviews repository.ReviewRepository) *ProductService {
	return &ProductService{products: products, reviews: reviews}
}

func (s *ProductService) CreateProduct(ctx context.Context, product *domain.Product) error {
	return s.products.Save(product)
}

// ProductPage is one catalog listing page plus pagination metadata.
type ProductPage struct {
	Products      []domain.Product `json:"products"`
	TotalPages    int64            `json:"totalPages"`
	TotalProducts int64            `json:"totalProducts"`
}

func (s *ProductService) ListProducts(ctx context.Context, filter domain.ProductFilter) (*ProductPage, error) {
	products, total, err := s.products.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	limit := int64(filter.Limit)
	if limit < 1 {
		limit = 10
	}
	totalPages := (total + limit - 1) / limit

	if products == nil {
		products = []domain.Product{}
	}
	return &ProductPage{
		Products:      products,
		TotalPages:    totalPages,
		TotalProducts: total,
	}, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint64) (*domain.Product, []domain.Review, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, ErrProductNotFound
	}

	reviews, err := s.reviews.FindByProduct(id)
	if err != nil {
		return nil, nil, err
	}
	return product, reviews, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint64, changes *domain.Product) (*domain.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	changes.ID = product.ID
	changes.CreatedAt = product.CreatedAt
	if err := s.products.Update(changes); err != nil {
		return nil, err
	}
	return changes, nil
}

// DeleteProduct removes the product and every review attached to it.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint64) error {
	product, err := s.products.FindByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	if err := s.products.Delete(id); err != nil {
		return err
	}
	return s.reviews.DeleteByProduct(id)
}
