package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/ratelimit"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// application holds the shared application dependencies so wiring happens in
// one place and cleanup can release them in order.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore  store.UserStore
	taskStore  store.TaskStore
	tokenStore store.TokenStore

	// Services
	tokenService     auth.TokenService
	passwordVerifier auth.PasswordVerifier
	taskService      *service.TaskService
	userService      *service.UserService

	// Rate limiters: a strict one for the anonymous auth endpoints, a
	// looser one for authenticated traffic.
	authLimiter ratelimit.Limiter
	apiLimiter  ratelimit.Limiter
}

// newApplication creates an application instance with all dependencies
// initialized. Core dependencies (configuration, logger, database) must be
// established by the caller.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost)
	app.taskStore = postgres.NewPostgresTaskStore(db)
	app.tokenStore = postgres.NewPostgresTokenStore(db)

	app.tokenService = auth.NewTokenService(cfg.Auth, app.tokenStore)
	app.passwordVerifier = auth.NewBcryptVerifier()
	logger.Info("Token authentication service initialized",
		"token_ttl_minutes", cfg.Auth.TokenTTLMinutes)

	app.taskService = service.NewTaskService(app.taskStore, logger)
	app.userService = service.NewUserService(
		db,
		app.userStore,
		app.tokenService,
		cfg.Uploads.Dir,
		logger,
	)

	app.authLimiter = ratelimit.NewFixedWindow(
		cfg.RateLimit.AuthLimit,
		time.Duration(cfg.RateLimit.AuthWindowSeconds)*time.Second,
	)
	app.apiLimiter = ratelimit.NewFixedWindow(
		cfg.RateLimit.APILimit,
		time.Duration(cfg.RateLimit.APIWindowSeconds)*time.Second,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
