package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/bloggers-api/internal/api/shared"
	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/platform/logger"
	"github.com/phrazzld/bloggers-api/internal/redact"
	"github.com/phrazzld/bloggers-api/internal/service/auth"
)

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware provides bearer and basic authentication for routes.
type AuthMiddleware struct {
	authenticator Authenticator
	adminLogin    string
	adminPassword string
}

// NewAuthMiddleware creates a new AuthMiddleware. adminLogin and
// adminPassword are the only credentials Basic accepts.
func NewAuthMiddleware(authenticator Authenticator, adminLogin, adminPassword string) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		adminLogin:    adminLogin,
		adminPassword: adminPassword,
	}
}

// Bearer validates the JWT in the Authorization header and stores the
// resolved user in the request context.
func (m *AuthMiddleware) Bearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := credentials(r, "Bearer")
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		user, err := m.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, domain.ErrUnauthorized):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContext(r.Context()).Error("failed to authenticate token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user)))
	})
}

// Basic accepts only the configured administrator credentials.
func (m *AuthMiddleware) Basic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		encoded, ok := credentials(r, "Basic")
		if !ok || !m.validBasic(encoded) {
			w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) validBasic(encoded string) bool {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}
	login, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		return false
	}
	loginOK := subtle.ConstantTimeCompare([]byte(login), []byte(m.adminLogin)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.adminPassword)) == 1
	return loginOK && passwordOK
}

// credentials returns the value after "<scheme> " in the Authorization
// header. The scheme match is case-insensitive.
func credentials(r *http.Request, scheme string) (string, bool) {
	header := r.Header.Get("Authorization")
	prefix, value, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(prefix, scheme) {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
