package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/remind-api/internal/config"
	"github.com/phrazzld/remind-api/internal/platform/brevo"
	"github.com/phrazzld/remind-api/internal/platform/postgres"
	"github.com/phrazzld/remind-api/internal/reminder"
	"github.com/phrazzld/remind-api/internal/service/auth"
	"github.com/phrazzld/remind-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	sender           reminder.Sender

	// Reminder engine
	clock     *reminder.Clock
	sweeper   *reminder.Sweeper
	scheduler *reminder.Scheduler
}

// newApplication creates a new application instance with all dependencies
// initialized and the reminder scheduler started. It accepts core dependencies
// like configuration, logger, and database connection that must be established
// before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password verifier
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost)
	app.taskStore = postgres.NewPostgresTaskStore(db)

	// Initialize email transport
	app.sender = brevo.NewSender(cfg.Email, logger.With("component", "email_sender"))
	if cfg.Email.BrevoAPIKey == "" {
		logger.Warn("Email credentials not configured, reminder delivery will fail until they are set")
	}

	// Initialize the reminder engine. The clock pins every due-date
	// comparison to the configured timezone.
	app.clock, err = reminder.NewClock(cfg.Reminder.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize reminder clock: %w", err)
	}

	app.sweeper = reminder.NewSweeper(
		app.taskStore,
		app.sender,
		app.clock,
		logger.With("component", "reminder_sweep"),
	)

	interval := time.Duration(cfg.Reminder.SweepIntervalMinutes) * time.Minute
	app.scheduler = reminder.NewScheduler(app.sweeper, interval, logger.With("component", "scheduler"))
	app.scheduler.Start(ctx)
	logger.Info("Reminder scheduler started",
		"interval", interval,
		"timezone", cfg.Reminder.Timezone)

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
	// Stop the scheduler and wait for any in-flight sweep to finish
	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	// Close database connection
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
