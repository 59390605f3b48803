package service

import (
	"context"
	"strings"

	"herptrack/internal/models"
	"herptrack/internal/repository"
)

// ProductService serves husbandry product recommendations.
type ProductService struct {
	productRepo repository.ProductRepo
}

func NewProductService(productRepo repository.ProductRepo) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Recommend lists products for a species, optionally narrowed to a
// category (uvb, heat, supplement, food).
func (s *ProductService) Recommend(ctx context.Context, species, category string) ([]models.Product, error) {
	return s.productRepo.List(ctx,
		strings.ToLower(strings.TrimSpace(species)),
		strings.ToLower(strings.TrimSpace(category)),
	)
}
