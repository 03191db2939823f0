package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/service/auth"
	"github.com/phrazzld/bloggers-api/internal/store"
	"github.com/phrazzld/bloggers-api/internal/view"
)

// UserService manages users on behalf of administrators.
type UserService struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(users store.UserStore, hasher auth.PasswordHasher, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		logger: componentLogger(logger, "user_service"),
	}
}

// List returns one page of users. searchLoginTerm and searchEmailTerm are
// partial, case-insensitive and OR-combined.
func (s *UserService) List(ctx context.Context, f query.Filter) (*query.Paginator[view.User], error) {
	pred := query.Build(query.Partial,
		query.T(query.PathUserLogin, f.SearchLoginTerm),
		query.T(query.PathUserEmail, f.SearchEmailTerm),
	)
	return query.List(ctx, s.users, query.UserProperties, pred, f, view.FromUser)
}

// Create adds a confirmed user. Taken login or email are reported as field
// errors.
func (s *UserService) Create(ctx context.Context, login, email, password string) (*domain.User, error) {
	if err := store.CheckUserAvailable(ctx, s.users, login, email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(login, email, hash)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			return nil, store.UserConflict(err)
		}
		s.logger.Error("failed to create user", "error", err, "login", login)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}

// Delete removes a user. Returns store.ErrUserNotFound when absent.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", component)
}
