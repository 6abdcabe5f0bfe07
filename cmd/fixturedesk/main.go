// Command fixturedesk runs the Fixture Desk API and its maintenance tasks.
//
// Usage:
//
//	fixturedesk serve
//	fixturedesk migrate up|down|status
//	fixturedesk seed-teams teams.yaml
//
// Configuration is read from the environment; a .env file in the working
// directory is loaded first if present.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/namsport/fixturedesk/internal/config"
)

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "fixturedesk",
		Short:         "Fixture scheduling service for the hockey federation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(seedTeamsCmd())

	if err := root.Execute(); err != nil {
		slog.Error("fixturedesk failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration and installs the JSON logger at the
// configured level as the slog default.
func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}
