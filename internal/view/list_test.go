package view

import (
	"context"
	"testing"
	"time"

	"storefront/internal/filter"
	"storefront/internal/model"
	"storefront/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newList(t *testing.T, client *mockClient, opts ...ListOption) (*ListController, *store.Repository) {
	t.Helper()

	repo := store.NewRepository()
	return NewListController(client, repo, zerolog.Nop(), opts...), repo
}

func TestListController_InitialState(t *testing.T) {
	c, _ := newList(t, new(mockClient))

	v := c.View()

	assert.Equal(t, StateIdle, v.State)
	assert.False(t, v.Loading)
	assert.Empty(t, v.Error)
	assert.Empty(t, v.Items)
	assert.Empty(t, v.EmptyMessage)
	assert.Equal(t, 1, v.Page)
}

func TestListController_Load(t *testing.T) {
	client := new(mockClient)
	client.On("ListProducts", mock.Anything).Return(products(3), nil)

	c, repo := newList(t, client)

	require.NoError(t, c.Load(context.Background()))

	v := c.View()
	assert.Equal(t, StateSuccess, v.State)
	assert.False(t, v.Loading)
	assert.Len(t, v.Items, 3)
	assert.Equal(t, 1, v.TotalPages)
	assert.Equal(t, []int{1}, v.Pages)
	assert.Empty(t, v.EmptyMessage)
	assert.Equal(t, 3, repo.Size(store.ProductsKey))

	client.AssertExpectations(t)
}

func TestListController_EmptyMessages(t *testing.T) {
	tests := []struct {
		name        string
		catalogue   []model.Product
		term        string
		wantMessage string
	}{
		{
			name:        "Empty catalogue",
			catalogue:   []model.Product{},
			wantMessage: model.MsgNoProducts,
		},
		{
			name:        "Nil catalogue",
			catalogue:   nil,
			wantMessage: model.MsgNoProducts,
		},
		{
			name:        "Empty catalogue with a search term",
			catalogue:   []model.Product{},
			term:        "phone",
			wantMessage: model.MsgNoProducts,
		},
		{
			name:        "No matches",
			catalogue:   []model.Product{{ID: "1", Title: "Widget", Price: 10}},
			term:        "gadget",
			wantMessage: model.MsgNoMatches,
		},
		{
			name:        "Matches",
			catalogue:   []model.Product{{ID: "1", Title: "Widget", Price: 10}},
			term:        "widg",
			wantMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockClient)
			if tt.catalogue == nil {
				client.On("ListProducts", mock.Anything).Return(nil, nil)
			} else {
				client.On("ListProducts", mock.Anything).Return(tt.catalogue, nil)
			}

			c, _ := newList(t, client)
			require.NoError(t, c.Load(context.Background()))
			c.SetSearch(tt.term)

			v := c.View()
			assert.Equal(t, tt.wantMessage, v.EmptyMessage)
			assert.Empty(t, v.Error)
			assert.NotNil(t, v.Items)
		})
	}
}

func TestListController_LoadFailure(t *testing.T) {
	fetchErr := model.NewFetchError("list_products", model.MsgFetchProducts, 500, nil)
	client := new(mockClient)
	client.On("ListProducts", mock.Anything).Return(nil, fetchErr)

	c, _ := newList(t, client)

	err := c.Load(context.Background())

	require.ErrorIs(t, err, fetchErr)
	v := c.View()
	assert.Equal(t, StateError, v.State)
	assert.False(t, v.Loading)
	assert.Equal(t, model.MsgLoadProductsFailed, v.Error)
	assert.Empty(t, v.EmptyMessage, "an error is not an empty result")
}

func TestListController_RetryAfterFailure(t *testing.T) {
	client := new(mockClient)
	client.On("ListProducts", mock.Anything).Return(nil, assert.AnError).Once()
	client.On("ListProducts", mock.Anything).Return(products(2), nil).Once()

	c, _ := newList(t, client)

	require.Error(t, c.Load(context.Background()))
	require.NoError(t, c.Load(context.Background()))

	v := c.View()
	assert.Equal(t, StateSuccess, v.State)
	assert.Empty(t, v.Error)
	assert.Len(t, v.Items, 2)
}

func TestListController_Pagination(t *testing.T) {
	client := new(mockClient)
	client.On("ListProducts", mock.Anything).Return(products(20), nil)

	c, _ := newList(t, client)
	require.NoError(t, c.Load(context.Background()))

	v := c.View()
	assert.Len(t, v.Items, 12)
	assert.Equal(t, 2, v.TotalPages)
	assert.True(t, v.HasNext)
	assert.False(t, v.HasPrevious)

	c.SetPage(2)
	v = c.View()
	assert.Len(t, v.Items, 8)
	assert.Equal(t, model.ProductID("13"), v.Items[0].ID)
	assert.False(t, v.HasNext)
	assert.True(t, v.HasPrevious)

	c.SetPage(5)
	v = c.View()
	assert.Empty(t, v.Items)
	assert.Empty(t, v.EmptyMessage, "no filter is active, so nothing failed to match")

	c.SetPage(0)
	assert.Equal(t, 1, c.Page())
}

func TestListController_PastLastFilteredPage(t *testing.T) {
	client := new(mockClient)
	client.On("ListProducts", mock.Anything).Return(products(20), nil)

	c, _ := newList(t, client)
	require.NoError(t, c.Load(context.Background()))

	c.SetSearch("Phone 1")
	require.Equal(t, 1, c.View().TotalPages)

	c.SetPage(2)
	v := c.View()

	assert.Empty(t, v.Items)
	assert.Equal(t, model.MsgNoMatches, v.EmptyMessage)
}

func TestListController_CustomPageSize(t *testing.T) {
	client := new(mockClient)
	client.On("ListProducts", mock.Anything).Return(products(10), nil)

	c, _ := newList(t, client, WithPageSize(4))
	require.NoError(t, c.Load(context.Background()))

	v := c.View()
	assert.Equal(t, 4, v.PageSize)
	assert.Equal(t, 3, v.TotalPages)
}

func TestListController_PageResetOnCriteriaChange(t *testing.T) {
	client := new(mockClient)
	client.On("ListProducts", mock.Anything).Return(products(20), nil)

	c, _ := newList(t, client)
	require.NoError(t, c.Load(context.Background()))

	c.SetPage(2)
	require.Equal(t, 2, c.Page())

	c.SetSearch("phone")
	assert.Equal(t, 1, c.Page(), "new term resets the page")
	assert.Equal(t, 1, c.View().Page)

	c.SetPage(2)
	c.SetSearch("phone")
	assert.Equal(t, 2, c.Page(), "same term keeps the page")

	c.SetFacets(filter.Facets{Price: []filter.PriceBucket{filter.PriceUnder300}})
	assert.Equal(t, 1, c.Page(), "facet change resets the page")

	c.SetPage(3)
	c.SetFacets(filter.Facets{Price: []filter.PriceBucket{filter.PriceUnder300}})
	assert.Equal(t, 3, c.Page(), "equal facets keep the page")

	c.SetCriteria(filter.Criteria{Term: "phone 1"})
	assert.Equal(t, 1, c.Page())

	client.AssertNumberOfCalls(t, "ListProducts", 1)
}

func TestListController_Filtering(t *testing.T) {
	brandA, brandB := "Apple", "Samsung"
	catalogue := []model.Product{
		{ID: "1", Title: "iPhone 9", Price: 549, Rating: 4.69, Brand: brandA},
		{ID: "2", Title: "iPhone X", Price: 899, Rating: 4.44, Brand: brandA},
		{ID: "3", Title: "Samsung Universe 9", Price: 1249, Rating: 4.09, Brand: brandB},
		{ID: "4", Title: "OPPOF19", Price: 280, Rating: 4.3},
		{ID: "5", Title: "Huawei P30", Price: 499, Rating: 3.9, Brand: "Huawei"},
	}
	client := new(mockClient)
	client.On("ListProducts", mock.Anything).Return(catalogue, nil)

	c, _ := newList(t, client)
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, []string{"apple", "huawei", "samsung"}, c.View().Brands)

	c.SetSearch("IPHONE")
	assert.Len(t, c.View().Items, 2)

	c.SetCriteria(filter.Criteria{
		Term: "",
		Facets: filter.Facets{
			Price:   []filter.PriceBucket{filter.Price300To700},
			Ratings: []filter.RatingBucket{filter.Rating4Plus},
		},
	})
	v := c.View()
	require.Len(t, v.Items, 1)
	assert.Equal(t, model.ProductID("1"), v.Items[0].ID)

	c.SetFacets(c.Criteria().Facets.ToggleBrand("samsung").TogglePrice(filter.PriceOver700))
	v = c.View()
	require.Len(t, v.Items, 1)
	assert.Equal(t, model.ProductID("3"), v.Items[0].ID)
}

func TestListController_CriteriaIsCopied(t *testing.T) {
	c, _ := newList(t, new(mockClient))

	facets := filter.Facets{Brands: []string{"apple"}}
	c.SetFacets(facets)
	facets.Brands[0] = "samsung"

	got := c.Criteria()
	assert.Equal(t, []string{"apple"}, got.Facets.Brands)

	got.Facets.Brands[0] = "nokia"
	assert.Equal(t, []string{"apple"}, c.Criteria().Facets.Brands)
}

func TestListController_PageChangeHook(t *testing.T) {
	var scrolled []int
	c, _ := newList(t, new(mockClient), WithPageChangeHook(func(page int) {
		scrolled = append(scrolled, page)
	}))

	c.SetPage(2)
	c.SetPage(2)
	c.SetPage(-1)

	assert.Equal(t, []int{2, 2, 1}, scrolled)
}

func TestListController_NewCollectionResetsPage(t *testing.T) {
	client := new(mockClient)
	client.On("ListProducts", mock.Anything).Return(products(30), nil)

	c, _ := newList(t, client)
	require.NoError(t, c.Load(context.Background()))
	c.SetPage(3)

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, 1, c.Page())
}

func TestListController_StaleLoadDiscarded(t *testing.T) {
	client := newGatedClient()
	repo := store.NewRepository()
	c := NewListController(client, repo, zerolog.Nop())

	first := make(chan error, 1)
	go func() { first <- c.Load(context.Background()) }()
	call1 := <-client.calls

	assert.True(t, c.View().Loading)

	second := make(chan error, 1)
	go func() { second <- c.Load(context.Background()) }()
	call2 := <-client.calls

	select {
	case <-call1.ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("first load was not cancelled")
	}

	call2.reply <- gatedResult{products: products(2)}
	require.NoError(t, <-second)

	call1.reply <- gatedResult{products: products(7)}
	assert.ErrorIs(t, <-first, ErrStale)

	v := c.View()
	assert.Equal(t, StateSuccess, v.State)
	assert.Len(t, v.Items, 2)
}

func TestListController_Close(t *testing.T) {
	client := newGatedClient()
	repo := store.NewRepository()
	repo.Set(store.ProductsKey, products(3))
	c := NewListController(client, repo, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background()) }()
	call := <-client.calls

	c.Close()

	select {
	case <-call.ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("in-flight load was not cancelled")
	}
	assert.ErrorIs(t, <-done, ErrStale)

	_, ok := repo.Get(store.ProductsKey)
	assert.False(t, ok, "collection is dropped on close")
	assert.Equal(t, StateIdle, c.View().State)

	assert.ErrorIs(t, c.Load(context.Background()), ErrClosed)
	c.Close()
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "state(9)", State(9).String())

	text, err := StateSuccess.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "success", string(text))
}

func TestState_UnmarshalText(t *testing.T) {
	var s State
	require.NoError(t, s.UnmarshalText([]byte("loading")))
	assert.Equal(t, StateLoading, s)

	assert.Error(t, s.UnmarshalText([]byte("done")))
}
