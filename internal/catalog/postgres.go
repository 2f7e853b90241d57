package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Querier is the subset of *pgxpool.Pool used by PostgresSource.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)

// PostgresSource implements Client on top of a products table.
type PostgresSource struct {
	db       Querier
	category string
	logger   zerolog.Logger
}

// NewPostgresSource creates a PostgreSQL-backed catalogue source.
func NewPostgresSource(db Querier, category string, logger zerolog.Logger) *PostgresSource {
	if category == "" {
		category = DefaultCategory
	}
	return &PostgresSource{
		db:       db,
		category: category,
		logger:   logger.With().Str("component", "catalog-postgres").Logger(),
	}
}

const productColumns = `id, title, price, description, thumbnail, rating, images, brand`

// ListProducts retrieves every product in the configured category.
func (s *PostgresSource) ListProducts(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category = $1
		ORDER BY position, id
	`

	rows, err := s.db.Query(ctx, query, s.category)
	if err != nil {
		s.logger.Error().Err(err).Str("category", s.category).Msg("failed to query products")
		return nil, model.NewFetchError("list_products", model.MsgFetchProducts, 0, fmt.Errorf("failed to query products: %w", err))
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, model.NewFetchError("list_products", model.MsgFetchProducts, 0, fmt.Errorf("failed to scan product: %w", err))
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, model.NewFetchError("list_products", model.MsgFetchProducts, 0, fmt.Errorf("error iterating products: %w", err))
	}

	s.logger.Debug().Int("count", len(products)).Str("category", s.category).Msg("retrieved products")

	return products, nil
}

// GetProduct retrieves a single product by its ID.
func (s *PostgresSource) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrProductIDMissing
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	p, err := scanProduct(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, model.NewFetchError("get_product", model.MsgFetchProductDetails, http.StatusNotFound, err)
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, model.NewFetchError("get_product", model.MsgFetchProductDetails, 0, fmt.Errorf("failed to query product: %w", err))
	}

	return &p, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p      model.Product
		id     string
		images []string
		brand  *string
	)
	if err := row.Scan(&id, &p.Title, &p.Price, &p.Description, &p.Thumbnail, &p.Rating, &images, &brand); err != nil {
		return model.Product{}, err
	}

	p.ID = model.ProductID(id)
	p.Images = images
	if p.Images == nil {
		p.Images = []string{}
	}
	if brand != nil {
		p.Brand = *brand
	}
	return p, nil
}
