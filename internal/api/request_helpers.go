package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/bloggers-api/internal/api/shared"
	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/query"
)

// getPathUUID parses a UUID path parameter. Ids that cannot name any stored
// record are reported as domain.ErrInvalidID, which maps to 404.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw := chi.URLParam(r, paramName)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidID, paramName, raw)
	}
	return id, nil
}

// currentUser returns the user set by the bearer middleware.
func currentUser(r *http.Request) (*domain.User, error) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// listFilter normalizes the list query parameters of r.
func listFilter(r *http.Request) query.Filter {
	return query.Normalize(r.URL.Query())
}
