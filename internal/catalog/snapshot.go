package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/snapshot"

	"github.com/rs/zerolog"
)

// SnapshotSource implements Client over a catalogue snapshot document with the
// same shape as the collection endpoint: {"products": [...]}. The document is
// loaded on every call.
type SnapshotSource struct {
	loader snapshot.Loader
	key    string
	logger zerolog.Logger
}

// NewSnapshotSource creates a source reading the snapshot at key through loader.
func NewSnapshotSource(loader snapshot.Loader, key string, logger zerolog.Logger) *SnapshotSource {
	return &SnapshotSource{
		loader: loader,
		key:    key,
		logger: logger.With().Str("component", "catalog-snapshot").Logger(),
	}
}

// ListProducts returns every product in the snapshot.
func (s *SnapshotSource) ListProducts(ctx context.Context) ([]model.Product, error) {
	raw, err := s.load(ctx)
	if err != nil {
		return nil, model.NewFetchError("list_products", model.MsgFetchProducts, 0, err)
	}
	return toModels(raw), nil
}

// GetProduct returns the product with the given id from the snapshot.
func (s *SnapshotSource) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrProductIDMissing
	}

	raw, err := s.load(ctx)
	if err != nil {
		return nil, model.NewFetchError("get_product", model.MsgFetchProductDetails, 0, err)
	}

	for _, a := range raw {
		if a.ID.String() == id {
			p := a.toModel()
			return &p, nil
		}
	}

	s.logger.Debug().Str("product_id", id).Msg("product not found in snapshot")
	return nil, model.NewFetchError("get_product", model.MsgFetchProductDetails, http.StatusNotFound, nil)
}

func (s *SnapshotSource) load(ctx context.Context) ([]apiProduct, error) {
	data, err := s.loader.Load(ctx, s.key)
	if err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("failed to load snapshot")
		return nil, err
	}

	var doc apiProductList
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("failed to decode snapshot")
		return nil, fmt.Errorf("decoding snapshot %s: %w", s.key, err)
	}
	return doc.Products, nil
}
