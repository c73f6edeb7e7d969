package repository

import (
	"context"
	"errors"
	"testing"

	"catalogctl/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCategory(t *testing.T, repo CategoryRepository, c *domain.Category) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), c))
}

func TestCategoryRepository_CreateAndFind(t *testing.T) {
	resetTables(t)
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	c := &domain.Category{
		ID:           10,
		Title:        "کفش",
		EnglishTitle: ptr("Shoes"),
		Icon:         ptr("shoe.svg"),
		Order:        3,
		Visible:      true,
		IsActive:     true,
	}
	createCategory(t, repo, c)

	found, err := repo.FindByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "کفش", found.Title)
	assert.Equal(t, "Shoes", *found.EnglishTitle)
	assert.Nil(t, found.Description)
	assert.Nil(t, found.ParentID)
	assert.Equal(t, 3, found.Order)
	assert.False(t, found.FilterableByBrand)
	assert.False(t, found.CreatedAt.IsZero())

	exists, err := repo.Exists(ctx, 10)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, 11)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCategoryRepository_DuplicateID(t *testing.T) {
	resetTables(t)
	repo := NewCategoryRepository(testDB)

	createCategory(t, repo, &domain.Category{ID: 1, Title: "A"})
	err := repo.Create(context.Background(), &domain.Category{ID: 1, Title: "B"})
	assert.ErrorIs(t, err, ErrCategoryAlreadyExists)
}

func TestCategoryRepository_SetParent(t *testing.T) {
	resetTables(t)
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	createCategory(t, repo, &domain.Category{ID: 1, Title: "Root"})
	createCategory(t, repo, &domain.Category{ID: 2, Title: "Child"})

	require.NoError(t, repo.SetParent(ctx, 2, 1))

	child, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, int64(1), *child.ParentID)
	assert.NotNil(t, child.UpdatedAt)

	assert.ErrorIs(t, repo.SetParent(ctx, 99, 1), ErrCategoryNotFound)
}

func TestCategoryRepository_SetParentUnknownParent(t *testing.T) {
	resetTables(t)
	repo := NewCategoryRepository(testDB)

	createCategory(t, repo, &domain.Category{ID: 1, Title: "Orphan"})

	err := repo.SetParent(context.Background(), 1, 404)
	assert.True(t, errors.Is(err, ErrParentNotFound), "got %v", err)
}

func TestCategoryRepository_Listing(t *testing.T) {
	resetTables(t)
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	createCategory(t, repo, &domain.Category{ID: 5, Title: "E", Order: 1})
	createCategory(t, repo, &domain.Category{ID: 3, Title: "C", Order: 1})
	createCategory(t, repo, &domain.Category{ID: 4, Title: "D", Order: 0})
	createCategory(t, repo, &domain.Category{ID: 7, Title: "G", Order: 0})
	require.NoError(t, repo.SetParent(ctx, 7, 4))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 7, 3, 5}, categoryIDs(all))

	roots, err := repo.ListRoots(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 3, 5}, categoryIDs(roots))

	children, err := repo.ListChildren(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, categoryIDs(children))

	none, err := repo.ListChildren(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func categoryIDs(categories []*domain.Category) []int64 {
	ids := make([]int64, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids
}
