package cli

import (
	"fmt"

	"catalogctl/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func newInitDBCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Initialize the database with all tables",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return app.withDB(ctx, func(db *sqlx.DB) error {
				err := database.WithSession(ctx, db, app.Logger, func(s *database.Session) error {
					return database.CreateSchema(ctx, s.Ext())
				})
				if err != nil {
					return withCode(exitDBWrite, fmt.Errorf("error initializing database: %w", err))
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Database initialized successfully!")
				return nil
			})
		},
	}
}

func newDropDBCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "drop-db",
		Short: "Drop all database tables",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := newPrompter(cmd).Confirm("Are you sure you want to drop all tables?")
				if err != nil {
					return withCode(exitUsage, err)
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			ctx := cmd.Context()
			return app.withDB(ctx, func(db *sqlx.DB) error {
				err := database.WithSession(ctx, db, app.Logger, func(s *database.Session) error {
					return database.DropSchema(ctx, s.Ext())
				})
				if err != nil {
					return withCode(exitDBWrite, fmt.Errorf("error dropping tables: %w", err))
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All tables dropped!")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
