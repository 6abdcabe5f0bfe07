package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/namsport/fixturedesk/migrations"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database migrations",
	}
	cmd.AddCommand(
		migrateSubcommand("up", "Apply all pending migrations", func(ctx context.Context, p *goose.Provider, logger *slog.Logger) error {
			results, err := p.Up(ctx)
			logResults(logger, results)
			return err
		}),
		migrateSubcommand("down", "Roll back the most recent migration", func(ctx context.Context, p *goose.Provider, logger *slog.Logger) error {
			result, err := p.Down(ctx)
			if result != nil {
				logResults(logger, []*goose.MigrationResult{result})
			}
			return err
		}),
		migrateSubcommand("status", "Show the state of every migration", func(ctx context.Context, p *goose.Provider, logger *slog.Logger) error {
			statuses, err := p.Status(ctx)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				logger.Info("migration",
					"version", s.Source.Version,
					"file", s.Source.Path,
					"state", string(s.State),
					"applied_at", s.AppliedAt,
				)
			}
			return nil
		}),
	)
	return cmd
}

func migrateSubcommand(use, short string, run func(context.Context, *goose.Provider, *slog.Logger) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := sql.Open("pgx", cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			provider, err := migrations.NewProvider(db)
			if err != nil {
				return err
			}
			if err := run(cmd.Context(), provider, logger); err != nil {
				return fmt.Errorf("migrate %s: %w", use, err)
			}
			return nil
		},
	}
}

func logResults(logger *slog.Logger, results []*goose.MigrationResult) {
	if len(results) == 0 {
		logger.Info("no migrations to apply")
	}
	for _, r := range results {
		logger.Info("migration applied",
			"version", r.Source.Version,
			"file", r.Source.Path,
			"direction", r.Direction,
			"duration", r.Duration,
		)
	}
}
