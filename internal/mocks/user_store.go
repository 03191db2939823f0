package mocks

import (
	"context"

	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/store"
)

// MockUserStore wraps a store.UserStore and lets tests override single
// methods. Methods without an Fn field delegate to the wrapped store.
type MockUserStore struct {
	store.UserStore

	CreateFn            func(ctx context.Context, user *domain.User) error
	UpdateFn            func(ctx context.Context, user *domain.User) error
	CountFn             func(ctx context.Context, p query.Predicate) (int64, error)
	GetByLoginOrEmailFn func(ctx context.Context, value string) (*domain.User, error)
}

// NewMockUserStore wraps inner.
func NewMockUserStore(inner store.UserStore) *MockUserStore {
	return &MockUserStore{UserStore: inner}
}

// Create implements the store.UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return m.UserStore.Create(ctx, user)
}

// Update implements the store.UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	return m.UserStore.Update(ctx, user)
}

// Count implements the store.UserStore interface
func (m *MockUserStore) Count(ctx context.Context, p query.Predicate) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, p)
	}
	return m.UserStore.Count(ctx, p)
}

// GetByLoginOrEmail implements the store.UserStore interface
func (m *MockUserStore) GetByLoginOrEmail(ctx context.Context, value string) (*domain.User, error) {
	if m.GetByLoginOrEmailFn != nil {
		return m.GetByLoginOrEmailFn(ctx, value)
	}
	return m.UserStore.GetByLoginOrEmail(ctx, value)
}
