package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConfirmationTTL is how long a registration confirmation code stays valid.
const ConfirmationTTL = time.Hour

// EmailConfirmation tracks whether a user has proven ownership of their email.
type EmailConfirmation struct {
	ConfirmationCode string
	ExpirationDate   time.Time
	IsConfirmed      bool
}

// User represents a registered user of the platform.
// PasswordHash and EmailConfirmation never leave the service layer.
type User struct {
	ID                uuid.UUID
	Login             string
	Email             string
	PasswordHash      string
	CreatedAt         time.Time
	EmailConfirmation EmailConfirmation
}

// NewUser creates an already confirmed user. Used when an administrator
// creates the account directly.
func NewUser(login, email, passwordHash string) (*User, error) {
	user := &User{
		ID:           uuid.New(),
		Login:        login,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
		EmailConfirmation: EmailConfirmation{
			IsConfirmed: true,
		},
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NewUnconfirmedUser creates a user that must confirm their email before
// logging in. A fresh confirmation code valid for ConfirmationTTL is attached.
func NewUnconfirmedUser(login, email, passwordHash string, now time.Time) (*User, error) {
	user := &User{
		ID:           uuid.New(),
		Login:        login,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now.UTC(),
	}
	user.RenewConfirmation(now)

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// RenewConfirmation replaces the confirmation code and pushes its expiry.
func (u *User) RenewConfirmation(now time.Time) {
	u.EmailConfirmation = EmailConfirmation{
		ConfirmationCode: uuid.NewString(),
		ExpirationDate:   now.UTC().Add(ConfirmationTTL),
	}
}

// Confirm marks the email as confirmed if code matches and has not expired.
func (u *User) Confirm(code string, now time.Time) error {
	switch {
	case u.EmailConfirmation.IsConfirmed:
		return NewValidationError("code", "email is already confirmed")
	case code == "" || u.EmailConfirmation.ConfirmationCode != code:
		return NewValidationError("code", "confirmation code is incorrect")
	case now.After(u.EmailConfirmation.ExpirationDate):
		return NewValidationError("code", "confirmation code is expired")
	}
	u.EmailConfirmation.IsConfirmed = true
	return nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	verr := &ValidationError{}
	if u.ID == uuid.Nil {
		verr.Add("id", "id is required")
	}
	if u.Login == "" {
		verr.Add("login", "login is required")
	}
	if u.Email == "" {
		verr.Add("email", "email is required")
	}
	if u.PasswordHash == "" {
		verr.Add("password", "password is required")
	}
	return verr.Err()
}
