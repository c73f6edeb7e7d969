package cli

import (
	"errors"
	"fmt"

	"catalogctl/internal/database"
	"catalogctl/internal/domain"
	"catalogctl/internal/importfile"
	"catalogctl/internal/repository"
	"catalogctl/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func newImportCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import-categories <file>",
		Short: "Import categories from a JSON or YAML file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := importfile.ReadCategories(args[0])
			if err != nil {
				return classify(exitIO, fmt.Errorf("error reading %s: %w", args[0], err))
			}

			ctx := cmd.Context()
			return app.withDB(ctx, func(db *sqlx.DB) error {
				var created int
				err := database.WithSession(ctx, db, app.Logger, func(s *database.Session) error {
					svc := service.NewImportService(
						repository.NewCategoryRepository(s.Ext()),
						repository.NewBrandRepository(s.Ext()),
						app.Logger,
					)
					var err error
					created, err = svc.ImportCategories(ctx, records)
					return err
				})
				if err != nil {
					return classify(exitDBWrite, fmt.Errorf("error importing categories: %w", err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new categories.\n", created)
				return nil
			})
		},
	}
}

func newListCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list-categories",
		Short: "List all categories",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return app.withDB(ctx, func(db *sqlx.DB) error {
				var categories []*domain.Category
				err := database.WithReadOnlySession(ctx, db, app.Logger, func(s *database.Session) error {
					var err error
					categories, err = catalogFor(s).ListCategories(ctx)
					return err
				})
				if err != nil {
					return withCode(exitDB, fmt.Errorf("error listing categories: %w", err))
				}
				printCategories(cmd.OutOrStdout(), categories)
				return nil
			})
		},
	}
}

func newTreeCategoriesCmd(app *App) *cobra.Command {
	var (
		parentID   int64
		activeOnly bool
	)

	cmd := &cobra.Command{
		Use:   "tree-categories",
		Short: "Print the category hierarchy",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := service.TreeOptions{ActiveOnly: activeOnly}
			if cmd.Flags().Changed("parent-id") {
				opts.ParentID = &parentID
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			return app.withDB(ctx, func(db *sqlx.DB) error {
				var printed int
				err := database.WithReadOnlySession(ctx, db, app.Logger, func(s *database.Session) error {
					var err error
					printed, err = catalogFor(s).PrintTree(ctx, out, opts)
					return err
				})

				switch {
				case errors.Is(err, repository.ErrCategoryNotFound):
					return withCode(exitValidation, fmt.Errorf("category with ID %d not found", parentID))
				case err != nil:
					return withCode(exitDB, fmt.Errorf("error printing category tree: %w", err))
				}

				if printed == 0 {
					fmt.Fprintln(out, "No categories found.")
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&parentID, "parent-id", 0, "Print only this category and its descendants")
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Skip inactive categories and their subtrees")
	return cmd
}

func catalogFor(s *database.Session) service.CatalogService {
	return service.NewCatalogService(
		repository.NewCategoryRepository(s.Ext()),
		repository.NewBrandRepository(s.Ext()),
	)
}
