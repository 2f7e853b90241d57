package main

import (
	"fmt"

	"storefront/internal/app"
	"storefront/internal/catalog"
	"storefront/internal/database"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a catalogue snapshot into PostgreSQL",
	Long: `Reads the snapshot at --snapshot (local file, or S3 first when S3_ENABLED)
and upserts its products into the products table under CATALOG_CATEGORY.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		path, _ := cmd.Flags().GetString("snapshot")
		if path == "" {
			path = cfg.Snapshot.Path
		}

		source := catalog.NewSnapshotSource(app.NewSnapshotLoader(ctx, cfg, logger), path, logger)
		products, err := source.ListProducts(ctx)
		if err != nil {
			return fmt.Errorf("failed to read snapshot %s: %w", path, err)
		}

		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		if err := database.EnsureSchema(ctx, pool); err != nil {
			return err
		}

		n, err := catalog.ImportProducts(ctx, pool, cfg.Catalog.Category, products)
		if err != nil {
			return err
		}

		logger.Info().
			Str("snapshot", path).
			Str("category", cfg.Catalog.Category).
			Int("products", n).
			Msg("snapshot imported")
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d products into category %q\n", n, cfg.Catalog.Category)
		return nil
	},
}

func init() {
	importCmd.Flags().String("snapshot", "", "snapshot key or file to import (default SNAPSHOT_PATH)")
}
