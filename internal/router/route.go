package router

import (
	"net/url"
	"strings"
)

// RouteKind names the view a path resolves to.
type RouteKind int

const (
	RouteNotFound RouteKind = iota
	RouteList
	RouteDetail
)

// Route is a resolved storefront path.
type Route struct {
	Kind      RouteKind
	ProductID string
}

const productsPrefix = "/products/"

// Resolve maps a storefront path to its view: "/" is the product list,
// "/products/{id}" a product detail, anything else not found. A detail route
// with an empty id still resolves to RouteDetail so the detail view can report
// the missing id.
func Resolve(path string) Route {
	if path == "" || path == "/" {
		return Route{Kind: RouteList}
	}

	if rest, ok := strings.CutPrefix(path, productsPrefix); ok {
		rest = strings.TrimSuffix(rest, "/")
		if strings.Contains(rest, "/") {
			return Route{Kind: RouteNotFound}
		}
		id, err := url.PathUnescape(rest)
		if err != nil {
			return Route{Kind: RouteNotFound}
		}
		return Route{Kind: RouteDetail, ProductID: id}
	}

	return Route{Kind: RouteNotFound}
}

// Path returns the canonical path of r.
func (r Route) Path() string {
	switch r.Kind {
	case RouteList:
		return "/"
	case RouteDetail:
		return productsPrefix + url.PathEscape(r.ProductID)
	default:
		return ""
	}
}
