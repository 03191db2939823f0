package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/bloggers-api/internal/api/shared"
	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/service"
	"github.com/phrazzld/bloggers-api/internal/service/auth"
	"github.com/phrazzld/bloggers-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("name", "bad"), http.StatusBadRequest},
		{"sort field", &query.SortFieldError{Value: "x"}, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unconfirmed", auth.ErrEmailNotConfirmed, http.StatusUnauthorized},
		{"expired token", fmt.Errorf("%w: %w", domain.ErrUnauthorized, auth.ErrExpiredToken), http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"blog not found", fmt.Errorf("get blog: %w", store.ErrBlogNotFound), http.StatusNotFound},
		{"invalid id", domain.ErrInvalidID, http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "Blog not found", GetSafeErrorMessage(fmt.Errorf("x: %w", store.ErrBlogNotFound)))
	assert.Equal(t, "Comment not found", GetSafeErrorMessage(store.ErrCommentNotFound))
	assert.Equal(t, "You do not own this resource", GetSafeErrorMessage(service.ErrNotOwned))
	assert.Equal(t, "Token expired", GetSafeErrorMessage(auth.ErrExpiredToken))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(errors.New("password=hunter2")))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestHandleAPIError(t *testing.T) {
	t.Run("validation error lists fields", func(t *testing.T) {
		verr := &domain.ValidationError{}
		verr.Add("login", "login is required")
		verr.Add("email", "email has invalid format")

		rec := httptest.NewRecorder()
		HandleAPIError(rec, httptest.NewRequest(http.MethodPost, "/users", nil), fmt.Errorf("create: %w", verr))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp shared.FieldErrorsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, verr.Fields, resp.ErrorsMessages)
	})

	t.Run("sort field error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/blogs", nil), &query.SortFieldError{Value: "nope"})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp shared.FieldErrorsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.ErrorsMessages, 1)
		assert.Equal(t, "sortBy", resp.ErrorsMessages[0].Field)
		assert.Contains(t, resp.ErrorsMessages[0].Message, "nope")
	})

	t.Run("internal error is sanitized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req = req.WithContext(shared.SetTraceID(req.Context()))
		rec := httptest.NewRecorder()
		HandleAPIError(rec, req, errors.New("pq: connection refused at postgres://u:p@db/x"))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "An unexpected error occurred", resp.Error)
		assert.Equal(t, shared.GetTraceID(req.Context()), resp.TraceID)
		assert.NotContains(t, rec.Body.String(), "postgres://")
	})
}
