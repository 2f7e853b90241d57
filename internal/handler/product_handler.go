package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"storefront/internal/catalog"
	"storefront/internal/filter"
	"storefront/internal/model"
	"storefront/internal/pagination"
	"storefront/internal/store"
	"storefront/internal/view"

	"github.com/rs/zerolog"
)

// ProductHandler renders the list and detail views as JSON. Every request runs
// its own controller over a fresh store, so nothing is shared between requests.
type ProductHandler struct {
	client   catalog.Client
	pageSize int
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(client catalog.Client, pageSize int, logger zerolog.Logger) *ProductHandler {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return &ProductHandler{
		client:   client,
		pageSize: pageSize,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products?q=&price=&rating=&brand=&page= requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInvalidParam, "method not allowed", h.logger)
		return
	}

	criteria, page, err := ParseListQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidParam, err.Error(), h.logger)
		return
	}

	lc := view.NewListController(h.client, store.NewRepository(), h.logger, view.WithPageSize(h.pageSize))
	defer lc.Close()

	if err := lc.Load(r.Context()); err != nil {
		writeError(w, r, http.StatusBadGateway, model.ErrCodeFetchFailed, lc.View().Error, h.logger)
		return
	}

	lc.SetCriteria(criteria)
	lc.SetPage(page)

	writeJSON(w, http.StatusOK, lc.View())
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.EscapedPath(), "/api/products")
	id = strings.Trim(id, "/")

	productID, err := url.PathUnescape(id)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidParam, "invalid product ID", h.logger)
		return
	}

	h.Detail(w, r, productID)
}

// Detail renders the detail view of the product with the given id.
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInvalidParam, "method not allowed", h.logger)
		return
	}

	dc := view.NewDetailController(h.client, h.logger)
	defer dc.Close()

	err := dc.Load(r.Context(), id)
	if err == nil {
		writeJSON(w, http.StatusOK, dc.View())
		return
	}

	message := dc.View().Error
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, message, h.logger)
	case isNotFound(err):
		writeError(w, r, http.StatusNotFound, model.ErrCodeProductNotFound, message, h.logger)
	default:
		writeError(w, r, http.StatusBadGateway, model.ErrCodeFetchFailed, message, h.logger)
	}
}

func isNotFound(err error) bool {
	fe, ok := model.AsFetchError(err)
	return ok && fe.IsNotFound()
}

// ParseListQuery reads list criteria and the page number from query values.
// Multi-valued facets accept repeated keys and comma-separated lists.
func ParseListQuery(q url.Values) (filter.Criteria, int, error) {
	var c filter.Criteria
	c.Term = q.Get("q")

	for _, v := range splitValues(q["price"]) {
		b, err := filter.ParsePriceBucket(v)
		if err != nil {
			return filter.Criteria{}, 0, err
		}
		c.Facets.Price = appendUnique(c.Facets.Price, b)
	}

	for _, v := range splitValues(q["rating"]) {
		b, err := filter.ParseRatingBucket(v)
		if err != nil {
			return filter.Criteria{}, 0, err
		}
		c.Facets.Ratings = appendUnique(c.Facets.Ratings, b)
	}

	for _, v := range splitValues(q["brand"]) {
		c.Facets.Brands = appendUnique(c.Facets.Brands, strings.ToLower(v))
	}

	page := 1
	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return filter.Criteria{}, 0, fmt.Errorf("invalid page parameter: %q", s)
		}
		page = n
	}

	return c, page, nil
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func appendUnique[T comparable](set []T, v T) []T {
	if slices.Contains(set, v) {
		return set
	}
	return append(set, v)
}
