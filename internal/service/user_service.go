package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalogctl/internal/domain"
	"catalogctl/internal/repository"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidUser = errors.New("invalid user")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ConfirmFunc asks the operator whether to go ahead with an action on user
type ConfirmFunc func(user *domain.User) (bool, error)

// UserService defines the interface for user management
type UserService interface {
	CreateUser(ctx context.Context, username, email, fullName string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	DeleteUser(ctx context.Context, username string, confirm ConfirmFunc) (bool, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// CreateUser validates and stores a new active user
func (s *userService) CreateUser(ctx context.Context, username, email, fullName string) (*domain.User, error) {
	user := &domain.User{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		FullName: strings.TrimSpace(fullName),
	}

	if err := validate.Struct(user); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUser, describeValidation(err))
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ListUsers returns all users ordered by id
func (s *userService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// DeleteUser removes the user with the given username once confirm agrees.
// It returns repository.ErrUserNotFound when no such user exists and false
// when the operator declined.
func (s *userService) DeleteUser(ctx context.Context, username string, confirm ConfirmFunc) (bool, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}

	ok, err := confirm(user)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return false, err
	}
	return true, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		case "max":
			msgs = append(msgs, fe.Field()+" is too long")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
