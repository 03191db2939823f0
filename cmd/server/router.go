package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/bloggers-api/internal/api"
	apiMiddleware "github.com/phrazzld/bloggers-api/internal/api/middleware"
)

// setupRouter creates the router with every route and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(app.metrics.Middleware)

	users := api.NewUserHandler(app.userService, app.logger)
	blogs := api.NewBlogHandler(app.blogService, app.logger)
	posts := api.NewPostHandler(app.postService, app.logger)
	comments := api.NewCommentHandler(app.commentService, app.logger)
	authHandler := api.NewAuthHandler(app.authService, app.logger)
	testingHandler := api.NewTestingHandler(app.stores.Cleaner, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(
		app.authService,
		app.config.Auth.AdminLogin,
		app.config.Auth.AdminPassword,
	)

	limit := func(next http.Handler) http.Handler { return next }
	if rl := app.config.RateLimit; rl.RequestsPerSecond > 0 {
		limit = apiMiddleware.RateLimit(apiMiddleware.NewTokenBucketLimiter(rl.RequestsPerSecond, rl.Burst))
	}

	r.Route("/users", func(r chi.Router) {
		r.Use(authMiddleware.Basic)
		r.Get("/", users.List)
		r.Post("/", users.Create)
		r.Delete("/{id}", users.Delete)
	})

	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", blogs.List)
		r.Get("/{id}", blogs.Get)
		r.Get("/{blogId}/posts", blogs.ListPosts)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Basic)
			r.Post("/", blogs.Create)
			r.Put("/{id}", blogs.Update)
			r.Delete("/{id}", blogs.Delete)
			r.Post("/{blogId}/posts", blogs.CreatePost)
		})
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", posts.List)
		r.Get("/{id}", posts.Get)
		r.Get("/{postId}/comments", posts.ListComments)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Basic)
			r.Post("/", posts.Create)
			r.Put("/{id}", posts.Update)
			r.Delete("/{id}", posts.Delete)
		})

		r.With(authMiddleware.Bearer).Post("/{postId}/comments", posts.CreateComment)
	})

	r.Route("/comments", func(r chi.Router) {
		r.Get("/{id}", comments.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Bearer)
			r.Put("/{id}", comments.Update)
			r.Delete("/{id}", comments.Delete)
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Post("/login", authHandler.Login)
			r.Post("/registration", authHandler.Register)
			r.Post("/registration-confirmation", authHandler.ConfirmRegistration)
			r.Post("/registration-email-resending", authHandler.ResendConfirmation)
		})

		r.With(authMiddleware.Bearer).Get("/me", authHandler.Me)
	})

	r.Delete("/testing/all-data", testingHandler.DeleteAll)

	r.Handle("/metrics", app.metrics.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
