package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/quill-api/internal/api/metrics"
	"github.com/phrazzld/quill-api/internal/config"
	"github.com/phrazzld/quill-api/internal/platform/postgres"
	"github.com/phrazzld/quill-api/internal/service"
	"github.com/phrazzld/quill-api/internal/service/auth"
	"github.com/phrazzld/quill-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger  *slog.Logger
	db      *sql.DB
	metrics *metrics.Metrics

	// Stores
	userStore     store.UserStore
	categoryStore store.CategoryStore
	tagStore      store.TagStore
	postStore     store.PostStore
	commentStore  store.CommentStore

	jwtService auth.JWTService

	// Services
	authService     service.AuthService
	userService     service.UserService
	categoryService service.CategoryService
	tagService      service.TagService
	postService     service.PostService
	commentService  service.CommentService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database must already be migrated.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tx := store.NewTxRunner(db)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)
	app.tagStore = postgres.NewPostgresTagStore(db, logger)
	app.postStore = postgres.NewPostgresPostStore(db, logger)
	app.commentStore = postgres.NewPostgresCommentStore(db, logger)

	app.authService = service.NewAuthService(app.userStore, hasher, app.jwtService, logger)
	app.userService = service.NewUserService(app.userStore, app.commentStore, hasher, tx, logger)
	app.categoryService = service.NewCategoryService(app.categoryStore, logger)
	app.tagService = service.NewTagService(app.tagStore, logger)
	app.postService = service.NewPostService(
		app.postStore,
		app.userStore,
		app.categoryStore,
		app.tagStore,
		tx,
		logger,
		service.WithPublishHook(app.metrics.PostPublished),
	)
	app.commentService = service.NewCommentService(app.commentStore, app.postStore, app.userStore, logger)

	if err := app.bootstrapAdmin(ctx); err != nil {
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// bootstrapAdmin creates the configured administrator on first start.
func (app *application) bootstrapAdmin(ctx context.Context) error {
	authCfg := app.config.Auth
	if authCfg.AdminUsername == "" {
		return nil
	}
	created, err := app.userService.BootstrapAdmin(ctx,
		authCfg.AdminUsername, authCfg.AdminEmail, authCfg.AdminPasswordHash)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}
	if !created {
		app.logger.Debug("bootstrap admin already exists", "username", authCfg.AdminUsername)
	}
	return nil
}

// Run serves HTTP until ctx is cancelled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
	app.logger.Info("Application shutdown completed")
}
