package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("alice", "alice@example.com", "$2a$10$hash")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice", user.Login)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, user.CreatedAt.Location())
	assert.True(t, user.EmailConfirmation.IsConfirmed, "admin-created users are confirmed")
	assert.Empty(t, user.EmailConfirmation.ConfirmationCode)
}

func TestNewUser_CollectsAllFieldErrors(t *testing.T) {
	_, err := NewUser("", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []FieldError{
		{Field: "login", Message: "login is required"},
		{Field: "email", Message: "email is required"},
		{Field: "password", Message: "password is required"},
	}, verr.Fields)
}

func TestNewUnconfirmedUser(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	user, err := NewUnconfirmedUser("bob", "bob@example.com", "hash", now)
	require.NoError(t, err)

	assert.False(t, user.EmailConfirmation.IsConfirmed)
	assert.NotEmpty(t, user.EmailConfirmation.ConfirmationCode)
	assert.Equal(t, now.Add(ConfirmationTTL), user.EmailConfirmation.ExpirationDate)
	assert.Equal(t, now, user.CreatedAt)
}

func TestUser_Confirm(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		prepare func(u *User)
		code    func(u *User) string
		at      time.Time
		wantErr string
	}{
		{
			name: "valid code",
			code: func(u *User) string { return u.EmailConfirmation.ConfirmationCode },
			at:   now.Add(time.Minute),
		},
		{
			name:    "wrong code",
			code:    func(*User) string { return "nope" },
			at:      now,
			wantErr: "confirmation code is incorrect",
		},
		{
			name:    "expired code",
			code:    func(u *User) string { return u.EmailConfirmation.ConfirmationCode },
			at:      now.Add(ConfirmationTTL + time.Second),
			wantErr: "confirmation code is expired",
		},
		{
			name:    "already confirmed",
			prepare: func(u *User) { u.EmailConfirmation.IsConfirmed = true },
			code:    func(u *User) string { return u.EmailConfirmation.ConfirmationCode },
			at:      now,
			wantErr: "email is already confirmed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user, err := NewUnconfirmedUser("bob", "bob@example.com", "hash", now)
			require.NoError(t, err)
			if tc.prepare != nil {
				tc.prepare(user)
			}

			err = user.Confirm(tc.code(user), tc.at)
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.True(t, user.EmailConfirmation.IsConfirmed)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, "code", verr.Fields[0].Field)
			assert.Equal(t, tc.wantErr, verr.Fields[0].Message)
		})
	}
}

func TestUser_RenewConfirmation(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	user, err := NewUnconfirmedUser("bob", "bob@example.com", "hash", now)
	require.NoError(t, err)
	old := user.EmailConfirmation.ConfirmationCode

	later := now.Add(30 * time.Minute)
	user.RenewConfirmation(later)

	assert.NotEqual(t, old, user.EmailConfirmation.ConfirmationCode)
	assert.Equal(t, later.Add(ConfirmationTTL), user.EmailConfirmation.ExpirationDate)
	assert.Error(t, user.Confirm(old, later), "old code no longer works")
}

func TestValidationError(t *testing.T) {
	var empty *ValidationError
	assert.NoError(t, empty.Err())
	assert.NoError(t, (&ValidationError{}).Err())

	verr := NewValidationError("name", "too long")
	verr.Add("name", "ignored duplicate")
	verr.Add("websiteUrl", "bad url")

	assert.Len(t, verr.Fields, 2)
	assert.EqualError(t, verr, "validation failed: name: too long; websiteUrl: bad url")
	assert.ErrorIs(t, verr.Err(), ErrValidation)
}
