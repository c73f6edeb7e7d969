package service

import (
	"context"
	"io"

	"catalogctl/internal/domain"
	"catalogctl/internal/repository"
)

// CatalogService defines read access to categories and brands
type CatalogService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListBrands(ctx context.Context, categoryID *int64) ([]*domain.Brand, error)
	PrintTree(ctx context.Context, w io.Writer, opts TreeOptions) (int, error)
	CategoryTree(ctx context.Context, opts TreeOptions) ([]*CategoryNode, error)
}

type catalogService struct {
	categories repository.CategoryRepository
	brands     repository.BrandRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(categories repository.CategoryRepository, brands repository.BrandRepository) CatalogService {
	return &catalogService{categories: categories, brands: brands}
}

// ListCategories returns every category ordered by (order, id)
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// ListBrands returns brands ordered by their second name
func (s *catalogService) ListBrands(ctx context.Context, categoryID *int64) ([]*domain.Brand, error) {
	return s.brands.List(ctx, categoryID)
}

func (s *catalogService) PrintTree(ctx context.Context, w io.Writer, opts TreeOptions) (int, error) {
	return PrintTree(ctx, w, s.categories, opts)
}

func (s *catalogService) CategoryTree(ctx context.Context, opts TreeOptions) ([]*CategoryNode, error) {
	return BuildTree(ctx, s.categories, opts)
}
