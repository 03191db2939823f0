package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/store"
)

// ConfirmationMailer delivers registration confirmation codes.
type ConfirmationMailer interface {
	SendConfirmation(ctx context.Context, to, code string) error
}

// Service implements login, registration and token authentication.
type Service struct {
	users  store.UserStore
	hasher PasswordHasher
	tokens JWTService
	mailer ConfirmationMailer
	now    func() time.Time
	logger *slog.Logger
}

// NewService creates an authentication service.
func NewService(
	users store.UserStore,
	hasher PasswordHasher,
	tokens JWTService,
	mailer ConfirmationMailer,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		mailer: mailer,
		now:    time.Now,
		logger: logger.With("component", "auth_service"),
	}
}

// WithClock replaces the time source. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Login checks credentials and issues an access token. loginOrEmail is
// compared exactly against both fields.
func (s *Service) Login(ctx context.Context, loginOrEmail, password string) (string, error) {
	user, err := s.users.GetByLoginOrEmail(ctx, loginOrEmail)
	if err != nil {
		if store.IsNotFoundError(err) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Debug("password mismatch", "user_id", user.ID)
		return "", ErrInvalidCredentials
	}

	if !user.EmailConfirmation.IsConfirmed {
		return "", ErrEmailNotConfirmed
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

// Authenticate resolves a bearer token to its user. Every failure wraps
// domain.ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	return s.Me(ctx, claims.UserID)
}

// Me returns the user behind an authenticated request. A user deleted after
// the token was issued is reported as domain.ErrUnauthorized.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// Register creates an unconfirmed user and emails the confirmation code.
// Taken login or email are reported as field errors. A delivery failure is
// logged but does not undo the registration; the user can ask for the code
// to be resent.
func (s *Service) Register(ctx context.Context, login, email, password string) error {
	if err := store.CheckUserAvailable(ctx, s.users, login, email); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	user, err := domain.NewUnconfirmedUser(login, email, hash, s.now())
	if err != nil {
		return err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			return store.UserConflict(err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	s.deliver(ctx, user)
	return nil
}

// ConfirmRegistration confirms the user holding code.
func (s *Service) ConfirmRegistration(ctx context.Context, code string) error {
	user, err := s.users.GetByConfirmationCode(ctx, code)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.NewValidationError("code", "confirmation code is incorrect")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := user.Confirm(code, s.now()); err != nil {
		return err
	}

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to confirm user: %w", err)
	}

	s.logger.Info("registration confirmed", "user_id", user.ID)
	return nil
}

// ResendConfirmation issues a new code for an unconfirmed email and sends it.
// Unlike Register, a delivery failure is returned.
func (s *Service) ResendConfirmation(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.NewValidationError("email", "user with this email does not exist")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if user.EmailConfirmation.IsConfirmed {
		return domain.NewValidationError("email", "email is already confirmed")
	}

	user.RenewConfirmation(s.now())
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to renew confirmation: %w", err)
	}

	if err := s.mailer.SendConfirmation(ctx, user.Email, user.EmailConfirmation.ConfirmationCode); err != nil {
		return fmt.Errorf("failed to send confirmation: %w", err)
	}
	return nil
}

func (s *Service) deliver(ctx context.Context, user *domain.User) {
	err := s.mailer.SendConfirmation(ctx, user.Email, user.EmailConfirmation.ConfirmationCode)
	if err != nil {
		s.logger.Error("failed to send confirmation email",
			"error", err,
			"user_id", user.ID)
	}
}
