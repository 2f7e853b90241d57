package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ProductID identifies a product. The catalogue emits numeric ids but string ids
// are accepted too, so the id is kept in its textual form.
type ProductID string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid product id: %w", err)
		}
		*id = ProductID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

// String returns the id as text.
func (id ProductID) String() string {
	return string(id)
}

// Product represents a catalogue item as shown in the storefront.
type Product struct {
	ID          ProductID `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	Images      []string  `json:"images"`
	Rating      float64   `json:"rating"`
	Brand       string    `json:"brand,omitempty"`
}

// NormalisedBrand returns the brand lower-cased for comparisons.
func (p Product) NormalisedBrand() string {
	return strings.ToLower(strings.TrimSpace(p.Brand))
}

// PrimaryImage returns the first image, falling back to the thumbnail.
func (p Product) PrimaryImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return p.Thumbnail
}

// ProductField returns an accessor for the named product field. Fields that are
// not text still resolve, their values are simply not strings.
func ProductField(name string) (func(Product) any, bool) {
	switch strings.ToLower(name) {
	case "id":
		return func(p Product) any { return p.ID }, true
	case "title":
		return func(p Product) any { return p.Title }, true
	case "description":
		return func(p Product) any { return p.Description }, true
	case "thumbnail":
		return func(p Product) any { return p.Thumbnail }, true
	case "brand":
		return func(p Product) any { return p.Brand }, true
	case "price":
		return func(p Product) any { return p.Price }, true
	case "rating":
		return func(p Product) any { return p.Rating }, true
	case "images":
		return func(p Product) any { return p.Images }, true
	default:
		return nil, false
	}
}
