package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/namsport/fixturedesk/internal/broadcast"
	"github.com/namsport/fixturedesk/internal/config"
	"github.com/namsport/fixturedesk/internal/handler"
	"github.com/namsport/fixturedesk/internal/middleware"
	"github.com/namsport/fixturedesk/internal/repo"
	"github.com/namsport/fixturedesk/internal/service"
	"github.com/namsport/fixturedesk/spec"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")

	// --- Event fan-out ----------------------------------------------------
	hubCfg := broadcast.DefaultHubConfig()
	corsPolicy := middleware.NewCORS(cfg.CORSOrigins)
	hubCfg.CheckOrigin = corsPolicy.CheckOrigin
	hub := broadcast.NewHub(hubCfg, logger)
	defer hub.Close()

	publishers := broadcast.Multi{hub}
	if cfg.NATSURL != "" {
		nats, err := broadcast.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix, logger)
		if err != nil {
			return fmt.Errorf("connect to nats: %w", err)
		}
		defer nats.Close()
		publishers = append(publishers, nats)
		logger.Info("publishing fixture events to nats", "prefix", cfg.NATSSubjectPrefix)
	}

	// --- Services ---------------------------------------------------------
	fixtureRepo := repo.NewFixtureRepo(pool)
	teamRepo := repo.NewTeamRepo(pool)

	teams := service.NewTeamService(teamRepo)
	opts := []service.FixtureOption{
		service.WithPublisher(publishers),
		service.WithLogger(logger),
	}
	if cfg.RequireKnownTeams {
		opts = append(opts, service.WithKnownTeamsCheck(teams))
	}
	fixtures := service.NewFixtureService(fixtureRepo, opts...)
	export := service.NewExportService(fixtureRepo, teamRepo)

	if len(cfg.StaffTokens) == 0 {
		logger.Warn("STAFF_TOKENS is empty; fixtures and teams are read-only")
	}
	api := handler.NewServer(fixtures, teams, export, handler.StaticTokens(cfg.StaffTokens),
		handler.WithLiveFeed(hub),
		handler.WithOpenAPI(spec.OpenAPI),
		handler.WithLogger(logger),
	)

	// --- Router -----------------------------------------------------------
	// RequestID → RealIP → SlogLogger → Recoverer → CORS → rate limit → body cap.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(corsPolicy.Handler)
	r.Use(middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", api.Routes())

	// --- HTTP Server ------------------------------------------------------
	// No WriteTimeout: the live feed holds its connection open.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	// Give in-flight requests up to 15 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
