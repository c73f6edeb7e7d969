package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"catalogctl/internal/config"
	"catalogctl/internal/database"
	custommiddleware "catalogctl/internal/middleware"
	"catalogctl/internal/repository"
	"catalogctl/internal/service"
	"catalogctl/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sqlx.DB
}

// NewServer builds the read-only catalog API. The server owns db and
// closes it in Close.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sqlx.DB) *Server {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			custommiddleware.RespondWithError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	reader := sessionReader(db, logger)
	transport.NewUserHandler(reader, logger).RegisterRoutes(router)
	transport.NewCatalogHandler(reader, logger).RegisterRoutes(router)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
	}
}

// sessionReader gives every request its own read-only session
func sessionReader(db *sqlx.DB, logger *zap.Logger) transport.Reader {
	return transport.ReaderFunc(func(ctx context.Context, fn func(svc transport.Services) error) error {
		return database.WithReadOnlySession(ctx, db, logger, func(s *database.Session) error {
			categories := repository.NewCategoryRepository(s.Ext())
			brands := repository.NewBrandRepository(s.Ext())
			return fn(transport.Services{
				Users:   service.NewUserService(repository.NewUserRepository(s.Ext())),
				Catalog: service.NewCatalogService(categories, brands),
			})
		})
	})
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
			return err
		}
	}
	return nil
}
