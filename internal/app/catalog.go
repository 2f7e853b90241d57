// Package app wires the configured catalogue source for the binaries.
package app

import (
	"context"
	"fmt"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/snapshot"

	"github.com/rs/zerolog"
)

// NewCatalog builds the catalogue source selected by cfg.Catalog.Source. The
// returned cleanup releases whatever the source holds open and is never nil.
func NewCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (catalog.Client, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Source {
	case config.SourceHTTP:
		logger.Info().
			Str("base_url", cfg.Catalog.BaseURL).
			Str("category", cfg.Catalog.Category).
			Msg("using HTTP catalogue")
		return catalog.NewHTTPClient(cfg.Catalog.BaseURL, logger,
			catalog.WithCategory(cfg.Catalog.Category),
			catalog.WithTimeout(cfg.Catalog.Timeout),
		), noop, nil

	case config.SourcePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := database.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return catalog.NewPostgresSource(pool, cfg.Catalog.Category, logger), pool.Close, nil

	case config.SourceSnapshot:
		loader := NewSnapshotLoader(ctx, cfg, logger)
		return catalog.NewSnapshotSource(loader, cfg.Snapshot.Path, logger), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown catalog source: %s", cfg.Catalog.Source)
	}
}

// NewSnapshotLoader returns a loader that tries S3 first when enabled and falls
// back to the local file system.
func NewSnapshotLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) snapshot.Loader {
	fileLoader := snapshot.NewFileLoader(logger)
	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for catalogue snapshots (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := snapshot.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return snapshot.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
}
