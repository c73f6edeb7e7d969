package cli

import (
	"fmt"

	"catalogctl/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <message>",
		Short: "Create a new migration",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := args[0]
			if err := database.CreateMigration(app.Config.Migration.Dir, message, app.Logger); err != nil {
				return withCode(exitMigration, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created successfully!\n", message)
			return nil
		},
	}
}

func newUpgradeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Apply all pending migrations",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withDB(cmd.Context(), func(db *sqlx.DB) error {
				if err := database.RunMigrations(db.DB, app.Config.Migration.Dir, app.Logger); err != nil {
					return withCode(exitMigration, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Database upgraded successfully!")
				return nil
			})
		},
	}
}

func newDowngradeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "downgrade",
		Short: "Downgrade database by one migration",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withDB(cmd.Context(), func(db *sqlx.DB) error {
				if err := database.RollbackMigration(db.DB, app.Config.Migration.Dir, app.Logger); err != nil {
					return withCode(exitMigration, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Database downgraded successfully!")
				return nil
			})
		},
	}
}

func newMigrationStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migration-status",
		Short: "Show applied and pending migrations",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withDB(cmd.Context(), func(db *sqlx.DB) error {
				if err := database.GetMigrationStatus(db.DB, app.Config.Migration.Dir, cmd.OutOrStdout()); err != nil {
					return withCode(exitMigration, err)
				}
				return nil
			})
		},
	}
}
