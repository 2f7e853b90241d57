package view

import (
	"context"
	"sync"

	"storefront/internal/catalog"
	"storefront/internal/filter"
	"storefront/internal/model"
	"storefront/internal/pagination"
	"storefront/internal/store"

	"github.com/rs/zerolog"
)

// ListView is the render-ready state of the product list.
type ListView struct {
	State        State           `json:"state"`
	Loading      bool            `json:"loading"`
	Error        string          `json:"error,omitempty"`
	Items        []model.Product `json:"items"`
	Page         int             `json:"page"`
	PageSize     int             `json:"pageSize"`
	TotalItems   int             `json:"totalItems"`
	TotalPages   int             `json:"totalPages"`
	HasNext      bool            `json:"hasNext"`
	HasPrevious  bool            `json:"hasPrevious"`
	Pages        []int           `json:"pages"`
	Criteria     filter.Criteria `json:"criteria"`
	Brands       []string        `json:"brands"`
	EmptyMessage string          `json:"emptyMessage,omitempty"`
}

// ListOption configures a ListController.
type ListOption func(*ListController)

// WithPageSize overrides pagination.DefaultPageSize.
func WithPageSize(n int) ListOption {
	return func(c *ListController) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithPageChangeHook registers fn to run after every page change. Render layers
// use it to scroll back to the top of the list.
func WithPageChangeHook(fn func(page int)) ListOption {
	return func(c *ListController) {
		c.onPageChange = fn
	}
}

// ListController drives the product list: catalogue → store → filters →
// pagination. It is safe for concurrent use.
type ListController struct {
	client       catalog.Client
	store        *store.Repository
	logger       zerolog.Logger
	pageSize     int
	onPageChange func(page int)

	mu       sync.Mutex
	state    State
	errMsg   string
	criteria filter.Criteria
	page     int
	gen      uint64
	cancel   context.CancelFunc
	closed   bool
}

// NewListController creates a list controller reading from client and keeping
// the loaded collection in repo.
func NewListController(client catalog.Client, repo *store.Repository, logger zerolog.Logger, opts ...ListOption) *ListController {
	c := &ListController{
		client:   client,
		store:    repo,
		logger:   logger.With().Str("component", "list-view").Logger(),
		pageSize: pagination.DefaultPageSize,
		page:     1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the product collection. An in-flight load is cancelled and its
// result discarded. On failure the view shows a fixed message and the fetch
// error is returned.
func (c *ListController) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateLoading
	c.errMsg = ""
	c.mu.Unlock()

	products, err := c.client.ListProducts(ctx)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.gen {
		c.logger.Debug().Uint64("generation", gen).Msg("discarding stale product list")
		return ErrStale
	}
	c.cancel = nil

	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load products")
		c.state = StateError
		c.errMsg = model.MsgLoadProductsFailed
		return err
	}

	if products == nil {
		products = []model.Product{}
	}
	c.store.Set(store.ProductsKey, products)
	c.page = 1
	c.state = StateSuccess

	c.logger.Debug().Int("count", len(products)).Msg("products loaded")
	return nil
}

// SetSearch updates the search term.
func (c *ListController) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.criteria
	next.Term = term
	c.setCriteriaLocked(next)
}

// SetFacets replaces the facet selections.
func (c *ListController) SetFacets(f filter.Facets) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.criteria
	next.Facets = f.Clone()
	c.setCriteriaLocked(next)
}

// SetCriteria replaces the search term and facets together.
func (c *ListController) SetCriteria(cr filter.Criteria) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setCriteriaLocked(filter.Criteria{Term: cr.Term, Facets: cr.Facets.Clone()})
}

// setCriteriaLocked resets to the first page when the filtered set changes.
func (c *ListController) setCriteriaLocked(next filter.Criteria) {
	if c.criteria.Equal(next) {
		return
	}
	c.criteria = next
	c.page = 1
}

// Criteria returns a copy of the active filters.
func (c *ListController) Criteria() filter.Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()

	return filter.Criteria{Term: c.criteria.Term, Facets: c.criteria.Facets.Clone()}
}

// SetPage moves to page n (at least 1) and runs the page change hook.
func (c *ListController) SetPage(n int) {
	n = max(n, 1)

	c.mu.Lock()
	c.page = n
	hook := c.onPageChange
	c.mu.Unlock()

	if hook != nil {
		hook(n)
	}
}

// Page returns the current page number.
func (c *ListController) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.page
}

// View filters and paginates the stored collection for the current state.
func (c *ListController) View() ListView {
	c.mu.Lock()
	state, errMsg, criteria, page := c.state, c.errMsg, c.criteria, c.page
	c.mu.Unlock()

	products := c.store.Products()
	pg := pagination.Paginate(filter.Apply(products, criteria), page, c.pageSize)

	v := ListView{
		State:       state,
		Loading:     state == StateLoading,
		Error:       errMsg,
		Items:       pg.Items,
		Page:        pg.Page,
		PageSize:    pg.PageSize,
		TotalItems:  pg.TotalItems,
		TotalPages:  pg.TotalPages,
		HasNext:     pg.HasNext,
		HasPrevious: pg.HasPrevious,
		Pages:       pg.Numbers(),
		Criteria:    criteria,
		Brands:      filter.Brands(products),
	}
	if v.Brands == nil {
		v.Brands = []string{}
	}

	// A page past the end of an unfiltered list is neither message.
	if state == StateSuccess && len(v.Items) == 0 {
		switch {
		case len(products) == 0:
			v.EmptyMessage = model.MsgNoProducts
		case !criteria.IsZero():
			v.EmptyMessage = model.MsgNoMatches
		}
	}

	return v
}

// Close cancels any in-flight load and drops the stored collection. Later loads
// return ErrClosed.
func (c *ListController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.store.Delete(store.ProductsKey)
	c.state = StateIdle
}
