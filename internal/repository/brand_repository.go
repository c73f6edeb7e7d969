package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalogctl/internal/domain"

	"github.com/jmoiron/sqlx"
)

var (
	ErrBrandNotFound   = errors.New("brand not found")
	ErrBrandSlugTaken  = errors.New("brand with this slug already exists")
	ErrBrandExists     = errors.New("brand with this id already exists")
	ErrUndetectedBrand = errors.New("undetected brand id cannot be stored")
)

const brandColumns = `id, slug, name1, name2, category_id, created_at, updated_at`

// BrandRepository defines the interface for brand data access
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	Update(ctx context.Context, brand *domain.Brand) error
	FindByID(ctx context.Context, id int64) (*domain.Brand, error)
	List(ctx context.Context, categoryID *int64) ([]*domain.Brand, error)
}

type brandRepository struct {
	db sqlx.ExtContext
}

// NewBrandRepository creates a new instance of BrandRepository
func NewBrandRepository(db sqlx.ExtContext) BrandRepository {
	return &brandRepository{db: db}
}

// Create inserts a brand with its externally supplied id
func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	query := `
		INSERT INTO brands (id, slug, name1, name2, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query, brand.ID, brand.Slug, brand.Name1, brand.Name2, brand.CategoryID).
		Scan(&brand.CreatedAt)
	if err != nil {
		return r.translate("create", brand, err)
	}

	return nil
}

// Update overwrites the slug, both names and the category reference
func (r *brandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	query := `
		UPDATE brands
		SET slug = $2, name1 = $3, name2 = $4, category_id = $5
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query, brand.ID, brand.Slug, brand.Name1, brand.Name2, brand.CategoryID).
		Scan(&brand.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBrandNotFound
		}
		return r.translate("update", brand, err)
	}

	return nil
}

func (r *brandRepository) translate(op string, brand *domain.Brand, err error) error {
	switch {
	case isUniqueViolation(err, "brands_slug_key"):
		return fmt.Errorf("%w: %q", ErrBrandSlugTaken, brand.Slug)
	case isUniqueViolation(err, "brands_pkey"):
		return ErrBrandExists
	case isCheckViolation(err):
		return ErrUndetectedBrand
	case isForeignKeyViolation(err):
		return ErrCategoryNotFound
	}
	return fmt.Errorf("failed to %s brand: %w", op, err)
}

// FindByID retrieves a brand by id
func (r *brandRepository) FindByID(ctx context.Context, id int64) (*domain.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE id = $1`

	brand := &domain.Brand{}
	if err := sqlx.GetContext(ctx, r.db, brand, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to find brand by ID: %w", err)
	}

	return brand, nil
}

// List retrieves brands ordered by their second name, optionally limited
// to a single category
func (r *brandRepository) List(ctx context.Context, categoryID *int64) ([]*domain.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands`
	args := []interface{}{}
	if categoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY name2 ASC, id ASC`

	brands := []*domain.Brand{}
	if err := sqlx.SelectContext(ctx, r.db, &brands, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	return brands, nil
}
