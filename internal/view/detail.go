package view

import (
	"context"
	"net/http"
	"sync"

	"storefront/internal/catalog"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// DetailView is the render-ready state of a single product page.
type DetailView struct {
	State   State          `json:"state"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
	ID      string         `json:"id"`
	Product *model.Product `json:"product,omitempty"`
}

// DetailController loads and holds one product. It is safe for concurrent use.
type DetailController struct {
	client catalog.Client
	logger zerolog.Logger

	mu      sync.Mutex
	state   State
	errMsg  string
	id      string
	product *model.Product
	gen     uint64
	cancel  context.CancelFunc
	closed  bool
}

// NewDetailController creates a detail controller reading from client.
func NewDetailController(client catalog.Client, logger zerolog.Logger) *DetailController {
	return &DetailController{
		client: client,
		logger: logger.With().Str("component", "detail-view").Logger(),
	}
}

// Load fetches the product with the given id, replacing whatever the controller
// showed before. A missing id fails without a fetch.
func (c *DetailController) Load(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
	gen := c.gen
	c.id = id
	c.product = nil

	if id == "" {
		c.state = StateError
		c.errMsg = model.MsgProductIDMissing
		c.mu.Unlock()
		return model.ErrProductIDMissing
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateLoading
	c.errMsg = ""
	c.mu.Unlock()

	p, err := c.client.GetProduct(ctx, id)
	cancel()
	if err == nil && p == nil {
		err = model.NewFetchError("get_product", model.MsgFetchProductDetails, http.StatusNotFound, nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.gen {
		c.logger.Debug().Str("product_id", id).Msg("discarding stale product")
		return ErrStale
	}
	c.cancel = nil

	if err != nil {
		c.logger.Error().Err(err).Str("product_id", id).Msg("failed to load product details")
		c.state = StateError
		c.errMsg = model.MsgLoadDetailsFailed
		return err
	}

	c.product = p
	c.state = StateSuccess
	return nil
}

// View returns the current detail state.
func (c *DetailController) View() DetailView {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := DetailView{
		State:   c.state,
		Loading: c.state == StateLoading,
		Error:   c.errMsg,
		ID:      c.id,
	}
	if c.product != nil {
		p := *c.product
		v.Product = &p
	}
	return v
}

// Close cancels any in-flight load. Later loads return ErrClosed.
func (c *DetailController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.product = nil
	c.state = StateIdle
}
