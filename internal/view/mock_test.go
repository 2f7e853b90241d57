package view

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/stretchr/testify/mock"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *mockClient) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// gatedClient parks every call until the test replies to it, so tests can
// interleave overlapping loads.
type gatedClient struct {
	calls chan *gatedCall
}

type gatedCall struct {
	ctx   context.Context
	id    string
	reply chan gatedResult
}

type gatedResult struct {
	products []model.Product
	product  *model.Product
	err      error
}

func newGatedClient() *gatedClient {
	return &gatedClient{calls: make(chan *gatedCall, 8)}
}

func (g *gatedClient) park(ctx context.Context, id string) (gatedResult, error) {
	c := &gatedCall{ctx: ctx, id: id, reply: make(chan gatedResult, 1)}
	g.calls <- c
	select {
	case r := <-c.reply:
		return r, nil
	case <-ctx.Done():
		return gatedResult{}, ctx.Err()
	}
}

func (g *gatedClient) ListProducts(ctx context.Context) ([]model.Product, error) {
	r, err := g.park(ctx, "")
	if err != nil {
		return nil, err
	}
	return r.products, r.err
}

func (g *gatedClient) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	r, err := g.park(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.product, r.err
}

func products(n int) []model.Product {
	out := make([]model.Product, n)
	for i := range out {
		out[i] = model.Product{
			ID:     model.ProductID(fmt.Sprint(i + 1)),
			Title:  fmt.Sprintf("Phone %d", i+1),
			Price:  float64(100 * (i + 1)),
			Rating: 4,
			Images: []string{},
		}
	}
	return out
}
