package main

import (
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/namsport/fixturedesk/internal/domain"
	"github.com/namsport/fixturedesk/internal/repo"
	"github.com/namsport/fixturedesk/internal/seed"
	"github.com/namsport/fixturedesk/internal/service"
)

func seedTeamsCmd() *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   "seed-teams <file.yaml>",
		Short: "Register every team listed in a YAML file, skipping names that exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			file, err := seed.Parse(f)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("create database pool: %w", err)
			}
			defer pool.Close()

			teams := service.NewTeamService(repo.NewTeamRepo(pool))
			user := &domain.UserIdentity{Subject: "cli:seed-teams", Name: actor, Staff: true}

			res, err := seed.Teams(ctx, teams, user, file, logger)
			logger.Info("seed finished", "summary", res.Summary())
			if err != nil {
				return err
			}
			if len(res.Errors) > 0 {
				return fmt.Errorf("%d teams rejected", len(res.Errors))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&actor, "as", "seed-teams", "name recorded as the registering staff member")
	return cmd
}
