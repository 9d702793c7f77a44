package main

import (
	"fmt"

	"foodgram/internal/logging"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := setup()
				if err != nil {
					return err
				}
				if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				logging.Info().Msg("migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := setup()
				if err != nil {
					return err
				}
				if err := rollbackAllFn(cfg.DatabaseURL); err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				logging.Info().Msg("migrations rolled back")
				return nil
			},
		},
	)
	return cmd
}
