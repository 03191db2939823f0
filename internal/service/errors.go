package service

import (
	"fmt"

	"github.com/phrazzld/bloggers-api/internal/domain"
)

// Service errors callers may check with errors.Is.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. It wraps domain.ErrForbidden.
	ErrNotOwned = fmt.Errorf("%w: resource is owned by another user", domain.ErrForbidden)
)
