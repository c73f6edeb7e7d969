package transport

import (
	"net/http"
	"time"

	"catalogctl/internal/domain"
	"catalogctl/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserProfile represents user data exposed over HTTP
type UserProfile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserProfile(u *domain.User) UserProfile {
	return UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// UserHandler handles HTTP requests for users
type UserHandler struct {
	reader Reader
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(reader Reader, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		reader: reader,
		logger: logger,
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/users", h.List)
}

// List returns every user ordered by id
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	var users []*domain.User
	err := h.reader.Read(r.Context(), func(svc Services) error {
		var err error
		users, err = svc.Users.ListUsers(r.Context())
		return err
	})
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	profiles := make([]UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, newUserProfile(u))
	}
	middleware.RespondWithJSON(w, http.StatusOK, profiles)
}
