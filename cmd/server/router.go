package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/taskdeck/taskdeck-api/internal/api"
	apiMiddleware "github.com/taskdeck/taskdeck-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. The strict auth limiter fronts the anonymous credential
// endpoints. Protected routes draw on the looser api budget twice: keyed by
// client IP before the bearer token is looked up, so floods of missing or
// invalid tokens are rejected without a store hit, and keyed per user once
// the token resolves.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.userService,
		app.tokenService,
		app.passwordVerifier,
		app.config.Uploads.MaxBytes,
	)
	taskHandler := api.NewTaskHandler(app.taskService)
	userHandler := api.NewUserHandler(app.userService, app.config.Uploads.MaxBytes)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)
	authLimit := apiMiddleware.NewRateLimitMiddleware(app.authLimiter)
	apiLimit := apiMiddleware.NewRateLimitMiddleware(app.apiLimiter)

	r.Route("/api", func(r chi.Router) {
		// Anonymous credential endpoints, rate limited by client IP.
		r.Group(func(r chi.Router) {
			r.Use(authLimit.Limit)
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		})

		// Protected routes. The IP window runs first so over-limit
		// clients are turned away before any token lookup; the user
		// window then bounds each account.
		r.Group(func(r chi.Router) {
			r.Use(apiLimit.LimitByIP)
			r.Use(authMiddleware.Authenticate)
			r.Use(apiLimit.Limit)

			r.Get("/auth/logout", authHandler.Logout)

			r.Get("/tasks", taskHandler.List)
			r.Post("/tasks", taskHandler.Create)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)

			r.Get("/user", userHandler.Get)
			r.Put("/user", userHandler.Update)
			r.Patch("/user", userHandler.UpdatePassword)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
