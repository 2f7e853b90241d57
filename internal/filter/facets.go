package filter

import (
	"fmt"
	"slices"
	"strings"

	"storefront/internal/model"
)

// PriceBucket is a price range selection.
type PriceBucket string

// Price buckets.
const (
	PriceUnder300 PriceBucket = "under-300"
	Price300To700 PriceBucket = "300-700"
	PriceOver700  PriceBucket = "over-700"
)

// PriceBuckets lists the supported price buckets in display order.
var PriceBuckets = []PriceBucket{PriceUnder300, Price300To700, PriceOver700}

// RatingBucket is a minimum rating selection.
type RatingBucket string

// Rating buckets.
const (
	Rating4Plus RatingBucket = "4-plus"
	Rating3Plus RatingBucket = "3-plus"
)

// RatingBuckets lists the supported rating buckets in display order.
var RatingBuckets = []RatingBucket{Rating4Plus, Rating3Plus}

// Matches reports whether price falls in the bucket. Unknown buckets match
// everything.
func (b PriceBucket) Matches(price float64) bool {
	switch b {
	case PriceUnder300:
		return price < 300
	case Price300To700:
		return price >= 300 && price <= 700
	case PriceOver700:
		return price > 700
	default:
		return true
	}
}

// Matches reports whether rating meets the bucket threshold. Unknown buckets
// match everything.
func (b RatingBucket) Matches(rating float64) bool {
	switch b {
	case Rating4Plus:
		return rating >= 4
	case Rating3Plus:
		return rating >= 3
	default:
		return true
	}
}

// ParsePriceBucket validates a price bucket name.
func ParsePriceBucket(s string) (PriceBucket, error) {
	b := PriceBucket(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(PriceBuckets, b) {
		return "", fmt.Errorf("unknown price bucket %q", s)
	}
	return b, nil
}

// ParseRatingBucket validates a rating bucket name.
func ParseRatingBucket(s string) (RatingBucket, error) {
	b := RatingBucket(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(RatingBuckets, b) {
		return "", fmt.Errorf("unknown rating bucket %q", s)
	}
	return b, nil
}

// Facets holds the multi-select rule sets. Within a facet rules combine with OR,
// facets combine with AND, and an empty set places no constraint.
type Facets struct {
	Price   []PriceBucket  `json:"price"`
	Ratings []RatingBucket `json:"ratings"`
	Brands  []string       `json:"brands"`
}

// IsEmpty reports whether every rule set is empty.
func (f Facets) IsEmpty() bool {
	return len(f.Price) == 0 && len(f.Ratings) == 0 && len(f.Brands) == 0
}

// Equal compares rule sets element-wise.
func (f Facets) Equal(other Facets) bool {
	return slices.Equal(f.Price, other.Price) &&
		slices.Equal(f.Ratings, other.Ratings) &&
		slices.Equal(f.Brands, other.Brands)
}

// Clone returns a deep copy.
func (f Facets) Clone() Facets {
	return Facets{
		Price:   slices.Clone(f.Price),
		Ratings: slices.Clone(f.Ratings),
		Brands:  slices.Clone(f.Brands),
	}
}

// TogglePrice adds the bucket when absent and removes it otherwise.
func (f Facets) TogglePrice(b PriceBucket) Facets {
	out := f.Clone()
	out.Price = toggle(out.Price, b)
	return out
}

// ToggleRating adds the bucket when absent and removes it otherwise.
func (f Facets) ToggleRating(b RatingBucket) Facets {
	out := f.Clone()
	out.Ratings = toggle(out.Ratings, b)
	return out
}

// ToggleBrand adds the brand when absent and removes it otherwise.
func (f Facets) ToggleBrand(brand string) Facets {
	out := f.Clone()
	out.Brands = toggle(out.Brands, strings.ToLower(strings.TrimSpace(brand)))
	return out
}

func toggle[T comparable](set []T, v T) []T {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(set, i, i+1)
	}
	return append(set, v)
}

// Match reports whether p passes every facet.
func (f Facets) Match(p model.Product) bool {
	return f.matchPrice(p.Price) && f.matchRating(p.Rating) && f.matchBrand(p.NormalisedBrand())
}

func (f Facets) matchPrice(price float64) bool {
	if len(f.Price) == 0 {
		return true
	}
	for _, b := range f.Price {
		if b.Matches(price) {
			return true
		}
	}
	return false
}

func (f Facets) matchRating(rating float64) bool {
	if len(f.Ratings) == 0 {
		return true
	}
	for _, b := range f.Ratings {
		if b.Matches(rating) {
			return true
		}
	}
	return false
}

func (f Facets) matchBrand(brand string) bool {
	if len(f.Brands) == 0 {
		return true
	}
	if brand == "" {
		return false
	}
	return slices.Contains(f.Brands, brand)
}

// ByFacets keeps the products that pass every facet. With no rules set the
// input is returned unchanged.
func ByFacets(products []model.Product, f Facets) []model.Product {
	if f.IsEmpty() {
		return products
	}

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
