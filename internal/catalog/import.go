package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/database"
	"storefront/internal/model"
)

const upsertProduct = `
	INSERT INTO products (id, title, price, description, thumbnail, rating, images, brand, category, position)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		price = EXCLUDED.price,
		description = EXCLUDED.description,
		thumbnail = EXCLUDED.thumbnail,
		rating = EXCLUDED.rating,
		images = EXCLUDED.images,
		brand = EXCLUDED.brand,
		category = EXCLUDED.category,
		position = EXCLUDED.position
`

// ImportProducts upserts products into the products table under category and
// returns how many rows were written. Each row's position is its index in
// products, so the category lists in the given order. It stops at the first
// failing row.
func ImportProducts(ctx context.Context, db database.Execer, category string, products []model.Product) (int, error) {
	if category == "" {
		category = DefaultCategory
	}

	for i, p := range products {
		if p.ID == "" {
			return i, fmt.Errorf("product at index %d has no id", i)
		}

		images := p.Images
		if images == nil {
			images = []string{}
		}
		var brand *string
		if p.Brand != "" {
			brand = &p.Brand
		}

		if _, err := db.Exec(ctx, upsertProduct,
			p.ID.String(), p.Title, p.Price, p.Description, p.Thumbnail, p.Rating, images, brand, category, i,
		); err != nil {
			return i, fmt.Errorf("failed to import product %s: %w", p.ID, err)
		}
	}

	return len(products), nil
}

// EncodeSnapshot renders products in the catalogue's list document shape, the
// same shape SnapshotSource reads back.
func EncodeSnapshot(products []model.Product) ([]byte, error) {
	doc := apiProductList{Products: make([]apiProduct, 0, len(products))}
	for _, p := range products {
		doc.Products = append(doc.Products, fromModel(p))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

func fromModel(p model.Product) apiProduct {
	a := apiProduct{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Thumbnail:   p.Thumbnail,
		Rating:      p.Rating,
		Images:      p.Images,
	}
	if a.Images == nil {
		a.Images = []string{}
	}
	if p.Brand != "" {
		brand := p.Brand
		a.Brand = &brand
	}
	return a
}
