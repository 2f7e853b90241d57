package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public catalogue the storefront reads from.
const DefaultBaseURL = "https://dummyjson.com/"

// HTTPClient implements Client against a dummyjson-compatible REST API.
type HTTPClient struct {
	baseURL    string
	category   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithCategory overrides the listed category.
func WithCategory(category string) HTTPOption {
	return func(c *HTTPClient) {
		c.category = category
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *HTTPClient) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// NewHTTPClient creates a catalogue client for baseURL
// (e.g. "https://dummyjson.com/").
func NewHTTPClient(baseURL string, logger zerolog.Logger, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		category:   DefaultCategory,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.With().Str("component", "catalog-http").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListProducts handles GET {base}/products/category/{category}.
func (c *HTTPClient) ListProducts(ctx context.Context) ([]model.Product, error) {
	path := "/products/category/" + url.PathEscape(c.category)

	var resp apiProductList
	if err := c.getJSON(ctx, "list_products", path, model.MsgFetchProducts, &resp); err != nil {
		return nil, err
	}

	return toModels(resp.Products), nil
}

// GetProduct handles GET {base}/products/{id}.
func (c *HTTPClient) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrProductIDMissing
	}

	var raw apiProduct
	if err := c.getJSON(ctx, "get_product", "/products/"+url.PathEscape(id), model.MsgFetchProductDetails, &raw); err != nil {
		return nil, err
	}

	p := raw.toModel()
	return &p, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, op, path, failMsg string, result any) error {
	start := time.Now()
	target := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return model.NewFetchError(op, failMsg, 0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("op", op).Str("url", target).Msg("catalogue request failed")
		return model.NewFetchError(op, failMsg, 0, fmt.Errorf("performing request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		c.logger.Error().
			Str("op", op).
			Str("url", target).
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("catalogue returned non-success status")
		return model.NewFetchError(op, failMsg, resp.StatusCode, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		c.logger.Error().Err(err).Str("op", op).Str("url", target).Msg("failed to decode catalogue response")
		return model.NewFetchError(op, failMsg, 0, fmt.Errorf("decoding response: %w", err))
	}

	c.logger.Debug().
		Str("op", op).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("catalogue request completed")

	return nil
}
