package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/platform/sqlstore"
	"github.com/phrazzld/task-manager-api/internal/seed"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/service/auth"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger  *slog.Logger
	db      *sql.DB
	dialect sqlstore.Dialect

	userStore       store.UserStore
	taskStatusStore store.TaskStatusStore
	labelStore      store.LabelStore
	taskStore       store.TaskStore

	jwtService        auth.JWTService
	loginService      *auth.LoginService
	userService       *service.UserService
	taskStatusService *service.TaskStatusService
	labelService      *service.LabelService
	taskService       *service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database must already be migrated. Seed data is applied when enabled.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	dialect sqlstore.Dialect,
) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		dialect: dialect,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.userStore = sqlstore.NewUserStore(db, dialect, cfg.Auth.BCryptCost, logger)
	app.taskStatusStore = sqlstore.NewTaskStatusStore(db, dialect, logger)
	app.labelStore = sqlstore.NewLabelStore(db, dialect, logger)
	app.taskStore = sqlstore.NewTaskStore(db, dialect, logger)

	app.loginService, err = auth.NewLoginService(app.userStore, auth.NewBcryptVerifier(), app.jwtService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create login service: %w", err)
	}

	app.userService, err = service.NewUserService(app.userStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskStatusService, err = service.NewTaskStatusService(app.taskStatusStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task status service: %w", err)
	}

	app.labelService, err = service.NewLabelService(app.labelStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create label service: %w", err)
	}

	app.taskService, err = service.NewTaskService(
		app.taskStore,
		app.taskStatusStore,
		app.userStore,
		app.labelStore,
		db,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	seeder := seed.NewSeeder(app.userStore, app.taskStatusStore, app.labelStore, logger)
	if err := seeder.Run(ctx, cfg.Seed); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
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
