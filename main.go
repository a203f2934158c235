package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"yaraan/internal/config"
	"yaraan/internal/logging"
	"yaraan/internal/metrics"
	"yaraan/internal/server"
	"yaraan/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to configure logging: %v\n", err)
		os.Exit(1)
	}

	srv, cleanup, err := NewApp(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer cleanup()

	// --- Start HTTP Server ---
	go func() {
		logger.Info().Str("addr", cfg.AppPort).Msg("Starting server")
		if err := srv.App.Listen(cfg.AppPort); err != nil {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server...")

	if err := srv.App.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("Error during Fiber shutdown")
	}
	logger.Info().Msg("Server gracefully stopped")
}

// NewApp opens the database, connects the optional event broker, bootstraps
// the admin account and seeds the catalog. The returned cleanup closes the
// broker and database connections.
func NewApp(cfg *config.Config, logger *zerolog.Logger) (*server.Server, func(), error) {
	if cfg.JWTSecretGenerated {
		logger.Warn().Msg("JWT_SECRET not set, using a random secret; admin tokens will not survive a restart")
	}

	db, err := server.OpenDatabase(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	closers := []func() error{func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}}
	cleanup := func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				logger.Error().Err(err).Msg("Error during shutdown")
			}
		}
	}

	deps := server.Deps{
		Config:  cfg,
		DB:      db,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	// --- Initialize RabbitMQ Client ---
	if cfg.RabbitMQEnabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append([]func() error{mqClient.Close}, closers...)
		deps.Publisher = mqClient

		if err := mqClient.ConsumeEvents(rabbitmq.LogEvent(logger)); err != nil {
			logger.Error().Err(err).Msg("Failed to start RabbitMQ consumer")
		}
	} else {
		logger.Info().Msg("RabbitMQ disabled, events will not be published")
	}

	srv := server.New(deps)

	if cfg.AdminPassword != "" {
		if err := srv.Auth.EnsureAdmin(cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to bootstrap admin: %w", err)
		}
	} else {
		logger.Warn().Msg("ADMIN_PASSWORD not set, no admin account was bootstrapped")
	}

	if cfg.SeedCatalog {
		created, err := srv.Products.SeedCatalog()
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
		if created > 0 {
			logger.Info().Int("products", created).Msg("Seeded launch catalog")
		}
	}

	return srv, cleanup, nil
}
