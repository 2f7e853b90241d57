// Package catalog reads products from the remote catalogue. Implementations
// project the raw records into model.Product and report every failed read as a
// *model.FetchError. Nothing is retried and nothing is cached.
package catalog

import (
	"context"

	"storefront/internal/model"
)

// Client is a source of catalogue products.
type Client interface {
	// ListProducts returns the full product collection for the configured category.
	ListProducts(ctx context.Context) ([]model.Product, error)

	// GetProduct returns a single product.
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}

// DefaultCategory is the catalogue category the storefront lists.
const DefaultCategory = "smartphones"

// apiProduct is the raw product shape served by the catalogue. Fields not
// listed here are ignored on decode.
type apiProduct struct {
	ID          model.ProductID `json:"id"`
	Title       string          `json:"title"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
	Thumbnail   string          `json:"thumbnail"`
	Rating      float64         `json:"rating"`
	Images      []string        `json:"images"`
	Brand       *string         `json:"brand"`
}

type apiProductList struct {
	Products []apiProduct `json:"products"`
}

func (a apiProduct) toModel() model.Product {
	p := model.Product{
		ID:          a.ID,
		Title:       a.Title,
		Price:       a.Price,
		Description: a.Description,
		Thumbnail:   a.Thumbnail,
		Rating:      a.Rating,
		Images:      a.Images,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if a.Brand != nil {
		p.Brand = *a.Brand
	}
	return p
}

func toModels(raw []apiProduct) []model.Product {
	products := make([]model.Product, 0, len(raw))
	for _, a := range raw {
		products = append(products, a.toModel())
	}
	return products
}
