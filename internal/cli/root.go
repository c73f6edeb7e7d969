// Package cli implements the catalogctl command surface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"catalogctl/internal/config"
	"catalogctl/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App carries what every command needs
type App struct {
	Config *config.Config
	Logger *zap.Logger
}

// withDB opens the configured database for the duration of fn
func (a *App) withDB(ctx context.Context, fn func(db *sqlx.DB) error) error {
	db, err := database.Open(ctx, a.Config.Database.URL)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			a.Logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	return fn(db)
}

func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Manage users, categories and brands in the catalog database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return withCode(exitUsage, fmt.Errorf("%w\nRun '%s --help' for usage", err, c.CommandPath()))
	})

	cmd.AddCommand(newInitDBCmd(app))
	cmd.AddCommand(newDropDBCmd(app))

	cmd.AddCommand(newCreateUserCmd(app))
	cmd.AddCommand(newListUsersCmd(app))
	cmd.AddCommand(newDeleteUserCmd(app))

	cmd.AddCommand(newMigrateCmd(app))
	cmd.AddCommand(newUpgradeCmd(app))
	cmd.AddCommand(newDowngradeCmd(app))
	cmd.AddCommand(newMigrationStatusCmd(app))

	cmd.AddCommand(newImportCategoriesCmd(app))
	cmd.AddCommand(newListCategoriesCmd(app))
	cmd.AddCommand(newTreeCategoriesCmd(app))

	cmd.AddCommand(newImportBrandsCmd(app))
	cmd.AddCommand(newListBrandsCmd(app))

	cmd.AddCommand(newServeCmd(app))
	return cmd
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context, app *App, args []string) int {
	return execute(ctx, app, args, os.Stdin, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, app *App, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	if err := cmd.ExecuteContext(ctx); err != nil {
		code := exitCode(err)
		app.Logger.Debug("Command failed", zap.Int("exit_code", code), zap.Error(err))
		fmt.Fprintln(errOut, err.Error())
		return code
	}
	return exitOK
}

// exactArgs is cobra.ExactArgs with a usage exit code
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return withCode(exitUsage, cobra.ExactArgs(n)(cmd, args))
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	return withCode(exitUsage, cobra.NoArgs(cmd, args))
}
