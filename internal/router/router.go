package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(productHandler *handler.ProductHandler, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	notFound := handler.NotFound(logger)

	mux.HandleFunc("/health", handler.Health)

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific product ID
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.List(w, r)
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Storefront paths: "/" and "/products/{id}", everything else is not found.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		route := Resolve(r.URL.EscapedPath())
		switch route.Kind {
		case RouteList:
			productHandler.List(w, r)
		case RouteDetail:
			productHandler.Detail(w, r, route.ProductID)
		default:
			notFound(w, r)
		}
	})

	// Apply middleware in order: Recovery -> Logging -> RequestID -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.RequestID(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
