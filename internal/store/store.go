// Package store holds catalogue state shared between views for the lifetime of
// a session.
package store

import (
	"slices"
	"sync"

	"storefront/internal/model"
)

// ProductsKey is the well-known key under which the list view keeps the current
// product collection.
const ProductsKey = "products"

// Repository is an in-memory mapping from keys to product collections. It is
// created and owned by whoever wires the views together; nothing is persisted.
type Repository struct {
	mu          sync.RWMutex
	collections map[string][]model.Product
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{
		collections: make(map[string][]model.Product),
	}
}

// Set replaces the collection stored under key. The repository keeps its own
// copy of the slice header so later appends by the caller are not observed.
func (r *Repository) Set(key string, products []model.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.collections[key] = slices.Clip(products)
}

// Get returns the collection stored under key.
func (r *Repository) Get(key string) ([]model.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products, ok := r.collections[key]
	return products, ok
}

// Products returns the current product collection, empty when nothing is loaded.
func (r *Repository) Products() []model.Product {
	products, _ := r.Get(ProductsKey)
	return products
}

// Find looks a product up by id in the current collection.
func (r *Repository) Find(id model.ProductID) (model.Product, bool) {
	for _, p := range r.Products() {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// Delete drops the collection stored under key.
func (r *Repository) Delete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.collections, key)
}

// Size returns the number of products under key.
func (r *Repository) Size(key string) int {
	products, _ := r.Get(key)
	return len(products)
}
