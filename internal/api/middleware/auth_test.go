package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggers-api/internal/api/shared"
	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authenticatorFunc func(ctx context.Context, token string) (*domain.User, error)

func (f authenticatorFunc) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	return f(ctx, token)
}

func echoUser(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := shared.UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(user.Login))
	})
}

func TestBearer(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Login: "alice"}
	authn := authenticatorFunc(func(_ context.Context, token string) (*domain.User, error) {
		switch token {
		case "good":
			return user, nil
		case "expired":
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, auth.ErrExpiredToken)
		case "broken":
			return nil, errors.New("store unavailable")
		default:
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, auth.ErrInvalidToken)
		}
	})
	mw := NewAuthMiddleware(authn, "admin", "qwerty")

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
		wantError  string
	}{
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK, wantBody: "alice"},
		{name: "lower case scheme", header: "bearer good", wantStatus: http.StatusOK, wantBody: "alice"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantError: "Authorization header required"},
		{name: "wrong scheme", header: "Basic good", wantStatus: http.StatusUnauthorized, wantError: "Authorization header required"},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantError: "Authorization header required"},
		{name: "invalid token", header: "Bearer nope", wantStatus: http.StatusUnauthorized, wantError: "Invalid token"},
		{name: "expired token", header: "Bearer expired", wantStatus: http.StatusUnauthorized, wantError: "Token expired"},
		{name: "backend failure", header: "Bearer broken", wantStatus: http.StatusInternalServerError, wantError: "Authentication error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			mw.Bearer(echoUser(t)).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, rec.Body.String())
			}
			if tc.wantError != "" {
				var resp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tc.wantError, resp.Error)
			}
		})
	}
}

func TestBasic(t *testing.T) {
	mw := NewAuthMiddleware(nil, "admin", "qwerty")
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	basic := func(creds string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid credentials", header: basic("admin:qwerty"), wantStatus: http.StatusNoContent},
		{name: "wrong password", header: basic("admin:qwerty1"), wantStatus: http.StatusUnauthorized},
		{name: "wrong login", header: basic("root:qwerty"), wantStatus: http.StatusUnauthorized},
		{name: "no separator", header: basic("adminqwerty"), wantStatus: http.StatusUnauthorized},
		{name: "not base64", header: "Basic %%%", wantStatus: http.StatusUnauthorized},
		{name: "bearer scheme", header: "Bearer abc", wantStatus: http.StatusUnauthorized},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/users", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			mw.Basic(ok).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusUnauthorized {
				assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
