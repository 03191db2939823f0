package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apiMiddleware "github.com/phrazzld/bloggers-api/internal/api/middleware"
	"github.com/phrazzld/bloggers-api/internal/config"
	"github.com/phrazzld/bloggers-api/internal/platform/mail"
	"github.com/phrazzld/bloggers-api/internal/service"
	"github.com/phrazzld/bloggers-api/internal/service/auth"
	"github.com/phrazzld/bloggers-api/internal/store"
)

// application holds the shared dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	stores store.Stores
	close  closeFunc

	authService    *auth.Service
	userService    *service.UserService
	blogService    *service.BlogService
	postService    *service.PostService
	commentService *service.CommentService

	metrics *apiMiddleware.Metrics
}

// newApplication connects storage and mail delivery from cfg and wires the
// services on top of them.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	stores, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	sender, err := mail.NewSender(cfg.Mail, logger)
	if err != nil {
		_ = closeStores(context.Background())
		return nil, fmt.Errorf("failed to initialize mail sender: %w", err)
	}
	mailer := mail.NewMailer(sender, cfg.Mail.From, cfg.Mail.ConfirmationURL)

	app, err := buildApplication(cfg, logger, stores, mailer)
	if err != nil {
		_ = closeStores(context.Background())
		return nil, err
	}
	app.close = closeStores
	return app, nil
}

// buildApplication wires services over already opened stores.
func buildApplication(
	cfg *config.Config,
	logger *slog.Logger,
	stores store.Stores,
	mailer auth.ConfirmationMailer,
) (*application, error) {
	tokens, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher := auth.NewBcryptHasher(cfg.Auth.BCryptCost)

	return &application{
		config:         cfg,
		logger:         logger,
		stores:         stores,
		close:          noopClose,
		authService:    auth.NewService(stores.Users, hasher, tokens, mailer, logger),
		userService:    service.NewUserService(stores.Users, hasher, logger),
		blogService:    service.NewBlogService(stores.Blogs, stores.Posts, logger),
		postService:    service.NewPostService(stores.Posts, stores.Blogs, stores.Comments, logger),
		commentService: service.NewCommentService(stores.Comments, logger),
		metrics:        apiMiddleware.NewMetrics(),
	}, nil
}

// cleanup releases storage connections.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.close(ctx); err != nil {
		app.logger.Error("failed to close storage", "error", err)
		return
	}
	app.logger.Info("storage closed")
}
