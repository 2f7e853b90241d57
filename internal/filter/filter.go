// Package filter narrows product collections by free text and by facets.
//
// All functions are pure: they never mutate their input, keep the relative order
// of surviving items and return a fresh slice whenever anything is filtered out.
package filter

import (
	"slices"
	"strings"

	"storefront/internal/model"
)

// Field extracts the value of one field from an item. Only string values can
// match a text term.
type Field[T any] func(T) any

// ByText keeps the items whose field contains term, ignoring case. An empty term
// returns items unchanged.
func ByText[T any](items []T, field Field[T], term string) []T {
	if term == "" {
		return items
	}

	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		value, ok := field(item).(string)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(value), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Title is the field the storefront search box matches against.
func Title(p model.Product) any {
	return p.Title
}

// Criteria is the full set of list filters: the search term plus facets.
type Criteria struct {
	Term   string `json:"term,omitempty"`
	Facets Facets `json:"facets"`
}

// IsZero reports whether no filter is active.
func (c Criteria) IsZero() bool {
	return c.Term == "" && c.Facets.IsEmpty()
}

// Equal reports whether two criteria select the same items.
func (c Criteria) Equal(other Criteria) bool {
	return c.Term == other.Term && c.Facets.Equal(other.Facets)
}

// Apply runs the text filter on titles and then the facet filter.
func Apply(products []model.Product, c Criteria) []model.Product {
	return ByFacets(ByText(products, Title, c.Term), c.Facets)
}

// Brands returns the distinct lower-cased brands present in products, sorted.
// Products without a brand are skipped.
func Brands(products []model.Product) []string {
	seen := make(map[string]struct{})
	var brands []string
	for _, p := range products {
		b := p.NormalisedBrand()
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		brands = append(brands, b)
	}
	slices.Sort(brands)
	return brands
}
