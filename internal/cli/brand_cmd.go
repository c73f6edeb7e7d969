package cli

import (
	"fmt"

	"catalogctl/internal/database"
	"catalogctl/internal/domain"
	"catalogctl/internal/importfile"
	"catalogctl/internal/repository"
	"catalogctl/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

// categoryFlag reads an optional --category-id
func categoryFlag(cmd *cobra.Command, value int64) *int64 {
	if !cmd.Flags().Changed("category-id") {
		return nil
	}
	return &value
}

func newImportBrandsCmd(app *App) *cobra.Command {
	var categoryID int64

	cmd := &cobra.Command{
		Use:   "import-brands <file>",
		Short: "Import brands from a JSON or YAML file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := categoryFlag(cmd, categoryID)

			records, err := importfile.ReadBrands(args[0])
			if err != nil {
				return classify(exitIO, fmt.Errorf("error reading %s: %w", args[0], err))
			}

			ctx := cmd.Context()
			return app.withDB(ctx, func(db *sqlx.DB) error {
				var result *service.BrandImportResult
				err := database.WithSession(ctx, db, app.Logger, func(s *database.Session) error {
					svc := service.NewImportService(
						repository.NewCategoryRepository(s.Ext()),
						repository.NewBrandRepository(s.Ext()),
						app.Logger,
					)
					var err error
					result, err = svc.ImportBrands(ctx, records, target)
					return err
				})
				if err != nil {
					return classify(exitDBWrite, fmt.Errorf("error importing brands: %w", err))
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Brands imported: %d created, %d updated.\n", result.Created, result.Updated)
				if result.Skipped > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d undetected brand records.\n", result.Skipped)
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&categoryID, "category-id", 0, "Assign every imported brand to this category")
	return cmd
}

func newListBrandsCmd(app *App) *cobra.Command {
	var categoryID int64

	cmd := &cobra.Command{
		Use:   "list-brands",
		Short: "List brands, optionally for one category",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := categoryFlag(cmd, categoryID)

			ctx := cmd.Context()
			return app.withDB(ctx, func(db *sqlx.DB) error {
				var brands []*domain.Brand
				err := database.WithReadOnlySession(ctx, db, app.Logger, func(s *database.Session) error {
					var err error
					brands, err = catalogFor(s).ListBrands(ctx, filter)
					return err
				})
				if err != nil {
					return withCode(exitDB, fmt.Errorf("error listing brands: %w", err))
				}
				printBrands(cmd.OutOrStdout(), brands)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&categoryID, "category-id", 0, "Only list brands of this category")
	return cmd
}
