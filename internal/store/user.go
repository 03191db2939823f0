package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/query"
)

// UserStore defines the interface for user data persistence.
//
// Find and Count accept predicates over the query.Path* user paths.
type UserStore interface {
	query.Finder[domain.User]

	// Create saves a new user.
	// Returns ErrLoginExists or ErrEmailExists when either is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByLoginOrEmail retrieves the user whose login or email equals value.
	// Returns ErrUserNotFound if no such user exists.
	GetByLoginOrEmail(ctx context.Context, value string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByConfirmationCode retrieves the user holding code.
	// Returns ErrUserNotFound if no user holds it.
	GetByConfirmationCode(ctx context.Context, code string) (*domain.User, error)

	// Update replaces a stored user.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
