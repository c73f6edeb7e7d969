package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"catalogctl/internal/domain"
	"catalogctl/internal/repository"
)

// Mock repositories for testing

type mockCategoryRepository struct {
	categories map[int64]*domain.Category
	writes     int
}

func newMockCategoryRepository(categories ...*domain.Category) *mockCategoryRepository {
	m := &mockCategoryRepository{categories: make(map[int64]*domain.Category)}
	for _, c := range categories {
		m.categories[c.ID] = c
	}
	return m
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if _, exists := m.categories[category.ID]; exists {
		return repository.ErrCategoryAlreadyExists
	}
	stored := *category
	stored.CreatedAt = time.Now()
	m.categories[category.ID] = &stored
	m.writes++
	return nil
}

func (m *mockCategoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, exists := m.categories[id]
	return exists, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	c, exists := m.categories[id]
	if !exists {
		return nil, repository.ErrCategoryNotFound
	}
	return c, nil
}

func (m *mockCategoryRepository) SetParent(ctx context.Context, id, parentID int64) error {
	c, exists := m.categories[id]
	if !exists {
		return repository.ErrCategoryNotFound
	}
	if _, exists := m.categories[parentID]; !exists {
		return fmt.Errorf("%w: %d", repository.ErrParentNotFound, parentID)
	}
	c.ParentID = &parentID
	m.writes++
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	all := make([]*domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		all = append(all, c)
	}
	domain.SortSiblings(all)
	return all, nil
}

// ListRoots and ListChildren return map order on purpose: callers must not
// rely on storage order.
func (m *mockCategoryRepository) ListRoots(ctx context.Context) ([]*domain.Category, error) {
	var roots []*domain.Category
	for _, c := range m.categories {
		if c.ParentID == nil {
			roots = append(roots, c)
		}
	}
	return roots, nil
}

func (m *mockCategoryRepository) ListChildren(ctx context.Context, parentID int64) ([]*domain.Category, error) {
	var children []*domain.Category
	for _, c := range m.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			children = append(children, c)
		}
	}
	return children, nil
}

type mockBrandRepository struct {
	brands map[int64]*domain.Brand
}

func newMockBrandRepository() *mockBrandRepository {
	return &mockBrandRepository{brands: make(map[int64]*domain.Brand)}
}

func (m *mockBrandRepository) slugTaken(slug string, id int64) bool {
	for _, b := range m.brands {
		if b.Slug == slug && b.ID != id {
			return true
		}
	}
	return false
}

func (m *mockBrandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	if brand.ID == domain.UndetectedBrandID {
		return repository.ErrUndetectedBrand
	}
	if _, exists := m.brands[brand.ID]; exists {
		return repository.ErrBrandExists
	}
	if m.slugTaken(brand.Slug, brand.ID) {
		return repository.ErrBrandSlugTaken
	}
	stored := *brand
	m.brands[brand.ID] = &stored
	return nil
}

func (m *mockBrandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	if _, exists := m.brands[brand.ID]; !exists {
		return repository.ErrBrandNotFound
	}
	if m.slugTaken(brand.Slug, brand.ID) {
		return repository.ErrBrandSlugTaken
	}
	stored := *brand
	m.brands[brand.ID] = &stored
	return nil
}

func (m *mockBrandRepository) FindByID(ctx context.Context, id int64) (*domain.Brand, error) {
	b, exists := m.brands[id]
	if !exists {
		return nil, repository.ErrBrandNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *mockBrandRepository) List(ctx context.Context, categoryID *int64) ([]*domain.Brand, error) {
	var brands []*domain.Brand
	for _, b := range m.brands {
		if categoryID == nil || (b.CategoryID != nil && *b.CategoryID == *categoryID) {
			brands = append(brands, b)
		}
	}
	sort.Slice(brands, func(i, j int) bool { return brands[i].Name2 < brands[j].Name2 })
	return brands, nil
}

type mockUserRepository struct {
	users  map[string]*domain.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Username]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.nextID++
	user.ID = m.nextID
	user.IsActive = true
	user.CreatedAt = time.Now()
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, exists := m.users[username]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	for name, u := range m.users {
		if u.ID == id {
			delete(m.users, name)
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (m *mockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.users), nil
}

func ptr[T any](v T) *T {
	return &v
}
