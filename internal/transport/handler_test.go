package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalogctl/internal/domain"
	"catalogctl/internal/middleware"
	"catalogctl/internal/repository"
	"catalogctl/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsers struct {
	users []*domain.User
	err   error
}

func (f *fakeUsers) CreateUser(ctx context.Context, username, email, fullName string) (*domain.User, error) {
	return nil, errors.New("not supported")
}

func (f *fakeUsers) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return f.users, f.err
}

func (f *fakeUsers) DeleteUser(ctx context.Context, username string, confirm service.ConfirmFunc) (bool, error) {
	return false, errors.New("not supported")
}

type fakeCatalog struct {
	categories []*domain.Category
	brands     []*domain.Brand
	tree       []*service.CategoryNode
	err        error

	lastTree      service.TreeOptions
	lastBrandsFor *int64
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return f.categories, f.err
}

func (f *fakeCatalog) ListBrands(ctx context.Context, categoryID *int64) ([]*domain.Brand, error) {
	f.lastBrandsFor = categoryID
	return f.brands, f.err
}

func (f *fakeCatalog) PrintTree(ctx context.Context, w io.Writer, opts service.TreeOptions) (int, error) {
	return 0, errors.New("not supported")
}

func (f *fakeCatalog) CategoryTree(ctx context.Context, opts service.TreeOptions) ([]*service.CategoryNode, error) {
	f.lastTree = opts
	return f.tree, f.err
}

func newTestRouter(users *fakeUsers, catalog *fakeCatalog) (http.Handler, *int) {
	reads := 0
	reader := ReaderFunc(func(ctx context.Context, fn func(svc Services) error) error {
		reads++
		return fn(Services{Users: users, Catalog: catalog})
	})

	r := chi.NewRouter()
	NewUserHandler(reader, zap.NewNop()).RegisterRoutes(r)
	NewCatalogHandler(reader, zap.NewNop()).RegisterRoutes(r)
	return r, &reads
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestUserHandler_List(t *testing.T) {
	users := &fakeUsers{users: []*domain.User{
		{ID: 1, Username: "alice", Email: "alice@example.com", IsActive: true},
		{ID: 2, Username: "bob", Email: "bob@example.com", IsActive: true},
	}}
	router, reads := newTestRouter(users, &fakeCatalog{})

	w := get(t, router, "/api/users")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *reads)

	var profiles []UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profiles))
	require.Len(t, profiles, 2)
	assert.Equal(t, "alice", profiles[0].Username)
	assert.Equal(t, int64(2), profiles[1].ID)
}

func TestUserHandler_ListFailure(t *testing.T) {
	router, _ := newTestRouter(&fakeUsers{err: errors.New("connection reset")}, &fakeCatalog{})

	w := get(t, router, "/api/users")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "failed to list users", response.Error.Message)
}

func TestCatalogHandler_ListCategoriesEmpty(t *testing.T) {
	router, _ := newTestRouter(&fakeUsers{}, &fakeCatalog{})

	w := get(t, router, "/api/categories")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCatalogHandler_Tree(t *testing.T) {
	catalog := &fakeCatalog{tree: []*service.CategoryNode{
		{ID: 1, Title: "Root", Children: []*service.CategoryNode{
			{ID: 2, Title: "Child", Children: []*service.CategoryNode{}},
		}},
	}}
	router, _ := newTestRouter(&fakeUsers{}, catalog)

	w := get(t, router, "/api/categories/tree?parent_id=1&active_only=true")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, catalog.lastTree.ParentID)
	assert.Equal(t, int64(1), *catalog.lastTree.ParentID)
	assert.True(t, catalog.lastTree.ActiveOnly)

	var nodes []*service.CategoryNode
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nodes))
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, "Child", nodes[0].Children[0].Title)
}

func TestCatalogHandler_TreeRejectsBadQuery(t *testing.T) {
	router, reads := newTestRouter(&fakeUsers{}, &fakeCatalog{})

	for _, target := range []string{
		"/api/categories/tree?parent_id=abc",
		"/api/categories/tree?parent_id=0",
		"/api/categories/tree?active_only=sometimes",
	} {
		w := get(t, router, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
	assert.Zero(t, *reads)
}

func TestCatalogHandler_TreeUnknownParent(t *testing.T) {
	router, _ := newTestRouter(&fakeUsers{}, &fakeCatalog{err: repository.ErrCategoryNotFound})

	w := get(t, router, "/api/categories/tree?parent_id=99")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogHandler_TreeCycle(t *testing.T) {
	router, _ := newTestRouter(&fakeUsers{}, &fakeCatalog{err: service.ErrCategoryCycle})

	w := get(t, router, "/api/categories/tree")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCatalogHandler_ListBrands(t *testing.T) {
	catalog := &fakeCatalog{brands: []*domain.Brand{{ID: 10, Slug: "nike", Name1: "Nike", Name2: "Nike"}}}
	router, _ := newTestRouter(&fakeUsers{}, catalog)

	w := get(t, router, "/api/brands?category_id=5")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, catalog.lastBrandsFor)
	assert.Equal(t, int64(5), *catalog.lastBrandsFor)

	var brands []*domain.Brand
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &brands))
	require.Len(t, brands, 1)
	assert.Equal(t, "nike", brands[0].Slug)

	w = get(t, router, "/api/brands")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, catalog.lastBrandsFor)

	w = get(t, router, "/api/brands?category_id=x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
