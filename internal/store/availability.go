package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/query"
)

// Field error messages reported for taken credentials.
const (
	MsgLoginTaken = "login should be unique"
	MsgEmailTaken = "email should be unique"
)

// CheckUserAvailable reports, as a *domain.ValidationError, every one of
// login and email that another user already holds. Store failures are
// returned as is.
func CheckUserAvailable(ctx context.Context, users UserStore, login, email string) error {
	verr := &domain.ValidationError{}

	taken := func(path, value string) (bool, error) {
		n, err := users.Count(ctx, query.FieldEquals{Field: path, Value: value})
		if err != nil {
			return false, fmt.Errorf("check %s availability: %w", path, err)
		}
		return n > 0, nil
	}

	loginTaken, err := taken(query.PathUserLogin, login)
	if err != nil {
		return err
	}
	if loginTaken {
		verr.Add("login", MsgLoginTaken)
	}

	emailTaken, err := taken(query.PathUserEmail, email)
	if err != nil {
		return err
	}
	if emailTaken {
		verr.Add("email", MsgEmailTaken)
	}

	return verr.Err()
}

// UserConflict converts ErrLoginExists and ErrEmailExists, as returned by
// UserStore.Create when a concurrent request won the race, into field
// errors. Other errors are returned unchanged.
func UserConflict(err error) error {
	switch {
	case errors.Is(err, ErrLoginExists):
		return domain.NewValidationError("login", MsgLoginTaken)
	case errors.Is(err, ErrEmailExists):
		return domain.NewValidationError("email", MsgEmailTaken)
	default:
		return err
	}
}
