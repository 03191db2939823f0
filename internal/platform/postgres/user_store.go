package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/platform/logger"
	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/store"
)

const userColumns = `id, login, email, password_hash, created_at,
	confirmation_code, confirmation_expires_at, is_confirmed`

var userColumnMap = columnMap{
	query.PathID:        "id",
	query.PathUserLogin: "login",
	query.PathUserEmail: "email",
	query.PathCreatedAt: "created_at",
}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	*finder[domain.User]
}

var _ store.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{&finder[domain.User]{
		db:         db,
		logger:     logger.With(slog.String("component", "user_store")),
		entity:     "user",
		table:      "users",
		selectCols: userColumns,
		columns:    userColumnMap,
		scan:       scanUser,
	}}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u       domain.User
		code    sql.NullString
		expires sql.NullTime
	)
	if err := row.Scan(
		&u.ID,
		&u.Login,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&code,
		&expires,
		&u.EmailConfirmation.IsConfirmed,
	); err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.EmailConfirmation.ConfirmationCode = code.String
	if expires.Valid {
		u.EmailConfirmation.ExpirationDate = expires.Time.UTC()
	}
	return &u, nil
}

func confirmationArgs(u *domain.User) (sql.NullString, sql.NullTime) {
	c := u.EmailConfirmation
	return sql.NullString{String: c.ConfirmationCode, Valid: c.ConfirmationCode != ""},
		sql.NullTime{Time: c.ExpirationDate, Valid: !c.ExpirationDate.IsZero()}
}

// Create implements store.UserStore.Create.
// Returns store.ErrLoginExists or store.ErrEmailExists on a unique violation.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	code, expires := confirmationArgs(user)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID,
		user.Login,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		code,
		expires,
		user.EmailConfirmation.IsConfirmed,
	)
	if err != nil {
		mapped := mapUserUniqueViolation(err)
		if IsUniqueViolation(err) {
			log.Warn("duplicate user on create", slog.String("error", err.Error()))
		} else {
			log.Error("failed to create user",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
		}
		return mapped
	}

	log.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, store.ErrUserNotFound,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByLoginOrEmail implements store.UserStore.GetByLoginOrEmail.
func (s *PostgresUserStore) GetByLoginOrEmail(ctx context.Context, value string) (*domain.User, error) {
	return s.getOne(ctx, store.ErrUserNotFound,
		`SELECT `+userColumns+` FROM users WHERE login = $1 OR email = $1 LIMIT 1`, value)
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, store.ErrUserNotFound,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetByConfirmationCode implements store.UserStore.GetByConfirmationCode.
func (s *PostgresUserStore) GetByConfirmationCode(ctx context.Context, code string) (*domain.User, error) {
	if code == "" {
		return nil, store.ErrUserNotFound
	}
	return s.getOne(ctx, store.ErrUserNotFound,
		`SELECT `+userColumns+` FROM users WHERE confirmation_code = $1`, code)
}

// Update implements store.UserStore.Update.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	code, expires := confirmationArgs(user)
	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET login = $2, email = $3, password_hash = $4,
			confirmation_code = $5, confirmation_expires_at = $6, is_confirmed = $7
		WHERE id = $1`,
		user.ID,
		user.Login,
		user.Email,
		user.PasswordHash,
		code,
		expires,
		user.EmailConfirmation.IsConfirmed,
	)
	if err != nil {
		return mapUserUniqueViolation(err)
	}
	return checkRowsAffected(result, store.ErrUserNotFound)
}

// Delete implements store.UserStore.Delete.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.exec(ctx, store.ErrUserNotFound, `DELETE FROM users WHERE id = $1`, id)
}
