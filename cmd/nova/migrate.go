package main

import (
	"fmt"

	"nova-hris/internal/app"
	"nova-hris/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infra, err := opts.connect()
			if err != nil {
				return err
			}
			defer infra.Close()

			if err := app.Migrate(infra); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infra, err := opts.connect()
			if err != nil {
				return err
			}
			defer infra.Close()

			if infra.Config.Database.Driver != "postgres" {
				return fmt.Errorf("migrate down needs the postgres driver, got %q", infra.Config.Database.Driver)
			}
			if err := database.RollbackMigrations(infra.DB, steps, infra.Logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}
