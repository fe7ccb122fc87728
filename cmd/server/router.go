package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/quill-api/internal/api"
	apiMiddleware "github.com/phrazzld/quill-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore, app.logger)
	policy := apiMiddleware.NewPolicy(apiMiddleware.DefaultRules)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.Metrics(app.metrics))
	r.Use(middleware.Recoverer)
	r.Use(authMiddleware.Authenticate)
	r.Use(policy.Enforce)

	authHandler := api.NewAuthHandler(app.authService, app.metrics, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/users", api.NewUserHandler(app.userService).Routes)
		r.Route("/categories", api.NewCategoryHandler(app.categoryService).Routes)
		r.Route("/tags", api.NewTagHandler(app.tagService).Routes)
		r.Route("/posts", api.NewPostHandler(app.postService).Routes)
		r.Route("/comments", api.NewCommentHandler(app.commentService).Routes)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}
