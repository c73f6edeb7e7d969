package cli

import (
	"errors"
	"fmt"

	"catalogctl/internal/database"
	"catalogctl/internal/domain"
	"catalogctl/internal/repository"
	"catalogctl/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

type createUserOptions struct {
	username string
	email    string
	fullName string
}

func newCreateUserCmd(app *App) *cobra.Command {
	var opts createUserOptions

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a new user",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)
			for _, field := range []struct {
				label string
				value *string
			}{
				{"Username", &opts.username},
				{"Email", &opts.email},
				{"Full name", &opts.fullName},
			} {
				if *field.value != "" {
					continue
				}
				answer, err := p.Ask(field.label)
				if err != nil {
					return err
				}
				*field.value = answer
			}

			ctx := cmd.Context()
			return app.withDB(ctx, func(db *sqlx.DB) error {
				err := database.WithSession(ctx, db, app.Logger, func(s *database.Session) error {
					svc := service.NewUserService(repository.NewUserRepository(s.Ext()))
					_, err := svc.CreateUser(ctx, opts.username, opts.email, opts.fullName)
					return err
				})
				if err != nil {
					return classify(exitDBWrite, fmt.Errorf("error creating user: %w", err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "User '%s' created successfully!\n", opts.username)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.username, "username", "", "Username for the new user")
	cmd.Flags().StringVar(&opts.email, "email", "", "Email for the new user")
	cmd.Flags().StringVar(&opts.fullName, "full-name", "", "Full name for the new user")
	return cmd
}

func newListUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list-users",
		Short: "List all users",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return app.withDB(ctx, func(db *sqlx.DB) error {
				var users []*domain.User
				err := database.WithReadOnlySession(ctx, db, app.Logger, func(s *database.Session) error {
					var err error
					users, err = service.NewUserService(repository.NewUserRepository(s.Ext())).ListUsers(ctx)
					return err
				})
				if err != nil {
					return withCode(exitDB, fmt.Errorf("error listing users: %w", err))
				}
				printUsers(cmd.OutOrStdout(), users)
				return nil
			})
		},
	}
}

func newDeleteUserCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-user <username>",
		Short: "Delete a user by username",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			p := newPrompter(cmd)
			out := cmd.OutOrStdout()

			confirm := func(u *domain.User) (bool, error) {
				if yes {
					return true, nil
				}
				return p.Confirm(fmt.Sprintf("Are you sure you want to delete user '%s'?", u.Username))
			}

			ctx := cmd.Context()
			return app.withDB(ctx, func(db *sqlx.DB) error {
				var deleted bool
				err := database.WithSession(ctx, db, app.Logger, func(s *database.Session) error {
					var err error
					deleted, err = service.NewUserService(repository.NewUserRepository(s.Ext())).DeleteUser(ctx, username, confirm)
					return err
				})

				switch {
				case errors.Is(err, repository.ErrUserNotFound):
					fmt.Fprintf(out, "User '%s' not found.\n", username)
					return nil
				case err != nil:
					return classify(exitDBWrite, fmt.Errorf("error deleting user: %w", err))
				case !deleted:
					fmt.Fprintln(out, "Aborted.")
					return nil
				}

				fmt.Fprintf(out, "User '%s' deleted successfully!\n", username)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
