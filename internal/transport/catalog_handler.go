package transport

import (
	"errors"
	"net/http"

	"catalogctl/internal/domain"
	"catalogctl/internal/middleware"
	"catalogctl/internal/repository"
	"catalogctl/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TreeQuery holds the tree endpoint's query parameters
type TreeQuery struct {
	ParentID   *int64 `validate:"omitempty,gt=0"`
	ActiveOnly bool
}

// BrandQuery holds the brand list endpoint's query parameters
type BrandQuery struct {
	CategoryID *int64 `validate:"omitempty,ne=0"`
}

// CatalogHandler serves categories and brands
type CatalogHandler struct {
	reader Reader
	logger *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(reader Reader, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		reader: reader,
		logger: logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Get("/tree", h.Tree)
	})
	r.Get("/api/brands", h.ListBrands)
}

// ListCategories returns the flat category list ordered by (order, id)
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	var categories []*domain.Category
	err := h.reader.Read(r.Context(), func(svc Services) error {
		var err error
		categories, err = svc.Catalog.ListCategories(r.Context())
		return err
	})
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	if categories == nil {
		categories = []*domain.Category{}
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// Tree returns the nested category forest
func (h *CatalogHandler) Tree(w http.ResponseWriter, r *http.Request) {
	query, err := parseTreeQuery(r)
	if err != nil {
		h.logger.Debug("Tree query rejected", zap.Error(err))
		middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(err))
		return
	}

	var nodes []*service.CategoryNode
	err = h.reader.Read(r.Context(), func(svc Services) error {
		var err error
		nodes, err = svc.Catalog.CategoryTree(r.Context(), service.TreeOptions{
			ParentID:   query.ParentID,
			ActiveOnly: query.ActiveOnly,
		})
		return err
	})

	switch {
	case errors.Is(err, repository.ErrCategoryNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "category not found")
		return
	case errors.Is(err, service.ErrCategoryCycle), errors.Is(err, service.ErrTreeTooDeep):
		h.logger.Warn("Category hierarchy is corrupted", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	case err != nil:
		h.logger.Error("Failed to build category tree", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to build category tree")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, nodes)
}

// ListBrands returns brands ordered by name2, optionally for one category
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	var query BrandQuery
	categoryID, err := middleware.QueryInt64(r, "category_id")
	if err == nil {
		query.CategoryID = categoryID
		err = middleware.ValidateRequest(query)
	}
	if err != nil {
		middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(err))
		return
	}

	var brands []*domain.Brand
	err = h.reader.Read(r.Context(), func(svc Services) error {
		var err error
		brands, err = svc.Catalog.ListBrands(r.Context(), query.CategoryID)
		return err
	})
	if err != nil {
		h.logger.Error("Failed to list brands", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list brands")
		return
	}

	if brands == nil {
		brands = []*domain.Brand{}
	}
	middleware.RespondWithJSON(w, http.StatusOK, brands)
}

func parseTreeQuery(r *http.Request) (TreeQuery, error) {
	var query TreeQuery

	parentID, err := middleware.QueryInt64(r, "parent_id")
	if err != nil {
		return query, err
	}
	activeOnly, err := middleware.QueryBool(r, "active_only")
	if err != nil {
		return query, err
	}

	query.ParentID = parentID
	query.ActiveOnly = activeOnly
	return query, middleware.ValidateRequest(query)
}
