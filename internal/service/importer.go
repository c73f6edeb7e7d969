package service

import (
	"context"
	"errors"
	"fmt"

	"catalogctl/internal/domain"
	"catalogctl/internal/importfile"
	"catalogctl/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTargetCategoryNotFound = errors.New("target category not found")
	ErrSelfParent             = errors.New("category cannot be its own parent")
)

// BrandImportResult reports what a brand import did
type BrandImportResult struct {
	Created int
	Updated int
	Skipped int
}

// ImportService defines bulk ingestion of categories and brands. All work
// of one call runs against the repositories it was built with, so a single
// session scopes the whole batch.
type ImportService interface {
	ImportCategories(ctx context.Context, records []importfile.CategoryRecord) (int, error)
	ImportBrands(ctx context.Context, records []importfile.BrandRecord, categoryID *int64) (*BrandImportResult, error)
}

type importService struct {
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	logger     *zap.Logger
}

// NewImportService creates a new instance of ImportService
func NewImportService(
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	logger *zap.Logger,
) ImportService {
	return &importService{
		categories: categories,
		brands:     brands,
		logger:     logger,
	}
}

// ImportCategories creates missing categories, then links parents. Parents
// may be declared after their children, which is why linking waits until
// every row exists. Rows that already exist are never overwritten; only
// their parent reference is patched. Returns the number of created rows.
func (s *importService) ImportCategories(ctx context.Context, records []importfile.CategoryRecord) (int, error) {
	log := s.logger.With(zap.String("run_id", uuid.NewString()))

	for _, r := range records {
		if parentID, ok := r.ParentID(); ok && parentID == r.ID {
			return 0, fmt.Errorf("%w: %d", ErrSelfParent, r.ID)
		}
	}

	created := 0
	for _, r := range records {
		exists, err := s.categories.Exists(ctx, r.ID)
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}

		if err := s.categories.Create(ctx, newCategory(r)); err != nil {
			return 0, fmt.Errorf("failed to import category %d: %w", r.ID, err)
		}
		created++
	}
	log.Debug("Categories created", zap.Int("records", len(records)), zap.Int("created", created))

	linked := 0
	for _, r := range records {
		parentID, ok := r.ParentID()
		if !ok {
			continue
		}
		if err := s.categories.SetParent(ctx, r.ID, parentID); err != nil {
			return 0, fmt.Errorf("failed to link category %d to parent %d: %w", r.ID, parentID, err)
		}
		linked++
	}

	log.Info("Categories imported",
		zap.Int("records", len(records)),
		zap.Int("created", created),
		zap.Int("linked", linked),
	)
	return created, nil
}

func newCategory(r importfile.CategoryRecord) *domain.Category {
	c := &domain.Category{
		ID:                r.ID,
		Title:             r.Title,
		EnglishTitle:      r.EnglishTitle,
		Description:       r.Description,
		Image:             r.Image,
		Icon:              r.Icon,
		Brand:             r.Brand,
		Order:             0,
		Visible:           true,
		IsActive:          true,
		FilterableByBrand: false,
		BackgroundColor:   r.BackgroundColor,
		AbsoluteURL:       r.AbsoluteURL,
	}
	if r.Order != nil {
		c.Order = *r.Order
	}
	if r.Visible != nil {
		c.Visible = *r.Visible
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	if r.FilterableByBrand != nil {
		c.FilterableByBrand = *r.FilterableByBrand
	}
	return c
}

// ImportBrands upserts brands by id. When categoryID is set it must exist
// and is assigned to every imported brand; otherwise existing brands keep
// their category. Records with the undetected brand id are skipped.
func (s *importService) ImportBrands(ctx context.Context, records []importfile.BrandRecord, categoryID *int64) (*BrandImportResult, error) {
	log := s.logger.With(zap.String("run_id", uuid.NewString()))

	if categoryID != nil {
		exists, err := s.categories.Exists(ctx, *categoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %d", ErrTargetCategoryNotFound, *categoryID)
		}
	}

	result := &BrandImportResult{}
	for _, r := range records {
		if r.ID == domain.UndetectedBrandID {
			result.Skipped++
			continue
		}

		brand, err := s.brands.FindByID(ctx, r.ID)
		switch {
		case errors.Is(err, repository.ErrBrandNotFound):
			brand = &domain.Brand{
				ID:         r.ID,
				Slug:       r.Slug,
				Name1:      r.Name1,
				Name2:      r.Name2,
				CategoryID: categoryID,
			}
			if err := s.brands.Create(ctx, brand); err != nil {
				return nil, fmt.Errorf("failed to import brand %d: %w", r.ID, err)
			}
			result.Created++
		case err != nil:
			return nil, err
		default:
			brand.Slug = r.Slug
			brand.Name1 = r.Name1
			brand.Name2 = r.Name2
			if categoryID != nil {
				brand.CategoryID = categoryID
			}
			if err := s.brands.Update(ctx, brand); err != nil {
				return nil, fmt.Errorf("failed to update brand %d: %w", r.ID, err)
			}
			result.Updated++
		}
	}

	log.Info("Brands imported",
		zap.Int("records", len(records)),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}
