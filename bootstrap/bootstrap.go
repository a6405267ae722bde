// Package bootstrap wires configuration, logging, Sentry, the database and
// the location service into a ready-to-start server.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ec-win-24/nexuspoint/config"
	"github.com/ec-win-24/nexuspoint/locations"
	"github.com/ec-win-24/nexuspoint/postgres"
	"github.com/ec-win-24/nexuspoint/server"
	"github.com/getsentry/sentry-go"
)

// Server creates a fully wired server: logger, Sentry (if enabled), a
// migrated database connection, the location repository and service, and
// the HTTP routes. The returned DB must be closed by the caller once the
// server stops.
func Server(ctx context.Context, cfg *config.Config) (*server.Server, *postgres.DB, error) {
	if cfg == nil {
		panic("You need to supply a config.Config value to bootstrap a new server")
	}

	logger := createLogger(cfg)

	if cfg.Sentry.Enabled {
		initSentry(logger, cfg)
	}

	db, err := postgres.NewDB(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("could not initialize database: %w", err)
	}
	if cfg.Database.Schema != "public" {
		if err := db.SwitchSchema(ctx, cfg.Database.Schema); err != nil {
			return nil, nil, err
		}
	}
	if err := db.Migrate(ctx); err != nil {
		return nil, nil, err
	}

	uow := postgres.NewUnitOfWork(db)
	repo := postgres.NewLocationRepository(db, uow)
	service := locations.NewService(repo)

	s := server.New(cfg).WithLogger(logger)
	s.AttachDefaultMiddleware()
	s.RegisterLocationRoutes(service)
	s.RegisterHealthRoutes()

	return s, db, nil
}

func createLogger(cfg *config.Config) *slog.Logger {
	var logger *slog.Logger
	loggerOptions := &slog.HandlerOptions{
		Level:     cfg.Log.Level.ToSlog(),
		AddSource: cfg.Log.Verbose && cfg.App.Debug,
	}
	switch cfg.Log.Format {
	case config.LogFormatPlaintext:
		{
			logger = slog.New(slog.NewTextHandler(os.Stdout, loggerOptions))
		}
	case config.LogFormatJSON:
		{
			logger = slog.New(slog.NewJSONHandler(os.Stdout, loggerOptions))
		}
	}
	slog.SetDefault(logger)
	return logger
}

func initSentry(logger *slog.Logger, cfg *config.Config) {
	logger.Debug("Trying to initialise Sentry")
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Debug:            cfg.App.Debug,
		AttachStacktrace: true,
		SampleRate:       cfg.Sentry.SampleRate,
		EnableTracing:    true,
		TracesSampleRate: cfg.Sentry.TracesRate,
		TracesSampler: sentry.TracesSampler(func(ctx sentry.SamplingContext) float64 {
			if ctx.Span.Name == "GET /ping" {
				return 0.0
			}
			return 1.0
		}),
		ProfilesSampleRate: cfg.Sentry.ProfilesRate,
		ServerName:         cfg.App.Name,
		Release:            cfg.App.Version,
		Environment:        string(cfg.App.Env),
	}); err != nil {
		logger.Error("Sentry initialization failed", "error", err)
	} else {
		logger.Debug("Sentry initialised")
	}
}
