package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFamilies(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		notFound  bool
		duplicate bool
	}{
		{name: "nil", err: nil},
		{name: "generic", err: errors.New("boom")},
		{name: "not found", err: ErrNotFound, notFound: true},
		{name: "user not found", err: ErrUserNotFound, notFound: true},
		{name: "wrapped blog not found", err: fmt.Errorf("get: %w", ErrBlogNotFound), notFound: true},
		{name: "post not found", err: ErrPostNotFound, notFound: true},
		{name: "comment not found", err: ErrCommentNotFound, notFound: true},
		{name: "login exists", err: ErrLoginExists, duplicate: true},
		{name: "wrapped email exists", err: fmt.Errorf("create: %w", ErrEmailExists), duplicate: true},
		{
			name:     "store error wrapping not found",
			err:      NewStoreError("blog", "get", "lookup failed", ErrBlogNotFound),
			notFound: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.notFound, IsNotFoundError(tc.err))
			assert.Equal(t, tc.duplicate, IsDuplicateError(tc.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreError("post", "find", "query failed", cause)

	assert.EqualError(t, err, "find post: query failed: connection refused")
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, NewStoreError("post", "find", "bad sort", nil), "find post: bad sort")

	var se *StoreError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &se))
	assert.Equal(t, "post", se.Entity)
}

func TestEntityErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrLoginExists, ErrEmailExists))
	assert.False(t, errors.Is(ErrBlogNotFound, ErrPostNotFound))
	assert.True(t, errors.Is(ErrLoginExists, ErrDuplicate))
}
