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
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this id already exists")
	ErrParentNotFound        = errors.New("parent category not found")
)

const categoryColumns = `id, title, english_title, description, image, icon, brand,
	category_parent_id, display_order, visible, is_active, filterable_by_brand,
	background_color, absolute_url, created_at, updated_at`

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Exists(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	SetParent(ctx context.Context, id, parentID int64) error
	List(ctx context.Context) ([]*domain.Category, error)
	ListRoots(ctx context.Context) ([]*domain.Category, error)
	ListChildren(ctx context.Context, parentID int64) ([]*domain.Category, error)
}

type categoryRepository struct {
	db sqlx.ExtContext
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db sqlx.ExtContext) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create inserts a category with its externally supplied id. The parent
// reference is written separately through SetParent.
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (
			id, title, english_title, description, image, icon, brand,
			display_order, visible, is_active, filterable_by_brand,
			background_color, absolute_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(
		ctx,
		query,
		category.ID,
		category.Title,
		category.EnglishTitle,
		category.Description,
		category.Image,
		category.Icon,
		category.Brand,
		category.Order,
		category.Visible,
		category.IsActive,
		category.FilterableByBrand,
		category.BackgroundColor,
		category.AbsoluteURL,
	).Scan(&category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "categories_pkey") {
			return ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// Exists reports whether a category with the given id is stored
func (r *categoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.db, &exists, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}
	return exists, nil
}

// FindByID retrieves a category by id
func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	category := &domain.Category{}
	if err := sqlx.GetContext(ctx, r.db, category, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}

	return category, nil
}

// SetParent patches the parent reference of an existing category
func (r *categoryRepository) SetParent(ctx context.Context, id, parentID int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET category_parent_id = $2 WHERE id = $1`, id, parentID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %d", ErrParentNotFound, parentID)
		}
		return fmt.Errorf("failed to set category parent: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set category parent: %w", err)
	}
	if n == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// List retrieves all categories ordered by display order and id
func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY display_order ASC, id ASC`
	return r.selectCategories(ctx, query)
}

// ListRoots retrieves the categories without a parent
func (r *categoryRepository) ListRoots(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE category_parent_id IS NULL
		ORDER BY display_order ASC, id ASC`
	return r.selectCategories(ctx, query)
}

// ListChildren retrieves the direct children of a category
func (r *categoryRepository) ListChildren(ctx context.Context, parentID int64) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_parent_id = $1`
	return r.selectCategories(ctx, query, parentID)
}

func (r *categoryRepository) selectCategories(ctx context.Context, query string, args ...interface{}) ([]*domain.Category, error) {
	categories := []*domain.Category{}
	if err := sqlx.SelectContext(ctx, r.db, &categories, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
