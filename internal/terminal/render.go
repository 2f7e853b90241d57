package terminal

import (
	"fmt"
	"io"
	"strings"

	"storefront/internal/filter"
	"storefront/internal/model"
	"storefront/internal/view"
)

func renderList(w io.Writer, v view.ListView) {
	fmt.Fprintln(w, "== Products ==")
	if line := describeCriteria(v.Criteria); line != "" {
		fmt.Fprintln(w, line)
	}

	switch {
	case v.Loading:
		fmt.Fprintln(w, "Loading products...")
		return
	case v.Error != "":
		fmt.Fprintf(w, "Error: %s\n", v.Error)
		return
	case v.EmptyMessage != "":
		fmt.Fprintln(w, v.EmptyMessage)
		return
	}

	for _, p := range v.Items {
		fmt.Fprintf(w, "  [%s] %s  $%.2f  rating %.2f", p.ID, p.Title, p.Price, p.Rating)
		if p.Brand != "" {
			fmt.Fprintf(w, "  %s", p.Brand)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Page %d of %d (%d products)", v.Page, v.TotalPages, v.TotalItems)
	if v.HasPrevious {
		fmt.Fprint(w, "  :prev")
	}
	if v.HasNext {
		fmt.Fprint(w, "  :next")
	}
	fmt.Fprintln(w)

	if len(v.Brands) > 0 {
		fmt.Fprintf(w, "Brands: %s\n", strings.Join(v.Brands, ", "))
	}
}

func describeCriteria(c filter.Criteria) string {
	var parts []string
	if c.Term != "" {
		parts = append(parts, fmt.Sprintf("search %q", c.Term))
	}
	if len(c.Facets.Price) > 0 {
		parts = append(parts, "price "+joinBuckets(c.Facets.Price))
	}
	if len(c.Facets.Ratings) > 0 {
		parts = append(parts, "rating "+joinBuckets(c.Facets.Ratings))
	}
	if len(c.Facets.Brands) > 0 {
		parts = append(parts, "brand "+strings.Join(c.Facets.Brands, "|"))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Filters: " + strings.Join(parts, ", ")
}

func joinBuckets[T ~string](buckets []T) string {
	names := make([]string, len(buckets))
	for i, b := range buckets {
		names[i] = string(b)
	}
	return strings.Join(names, "|")
}

func renderDetail(w io.Writer, v view.DetailView) {
	switch {
	case v.Loading:
		fmt.Fprintln(w, "Loading product...")
		return
	case v.Error != "":
		fmt.Fprintf(w, "Error: %s\n", v.Error)
		fmt.Fprintln(w, "(:back to return)")
		return
	case v.Product == nil:
		return
	}

	renderProduct(w, *v.Product)
}

func renderProduct(w io.Writer, p model.Product) {
	fmt.Fprintf(w, "== %s ==\n", p.Title)
	if p.Brand != "" {
		fmt.Fprintf(w, "Brand:  %s\n", p.Brand)
	}
	fmt.Fprintf(w, "Price:  $%.2f\n", p.Price)
	fmt.Fprintf(w, "Rating: %.2f\n", p.Rating)
	if p.Description != "" {
		fmt.Fprintln(w, p.Description)
	}
	if img := p.PrimaryImage(); img != "" {
		fmt.Fprintf(w, "Image:  %s\n", img)
	}
	if len(p.Images) > 1 {
		fmt.Fprintf(w, "        (+%d more images)\n", len(p.Images)-1)
	}
	fmt.Fprintln(w, "[Add to Cart]  (:back to return)")
}

func renderNotFound(w io.Writer, path string) {
	fmt.Fprintln(w, model.MsgPageNotFound)
	fmt.Fprintf(w, "No page at %q. :go / to return to the products.\n", path)
}
