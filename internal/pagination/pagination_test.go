package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func TestPaginate(t *testing.T) {
	items := makeItems(20)

	tests := []struct {
		name        string
		page        int
		pageSize    int
		expected    []int
		totalPages  int
		startIndex  int
		endIndex    int
		hasNext     bool
		hasPrevious bool
	}{
		{
			name:       "First page",
			page:       1,
			pageSize:   12,
			expected:   makeItems(12),
			totalPages: 2,
			startIndex: 0,
			endIndex:   12,
			hasNext:    true,
		},
		{
			name:        "Last partial page",
			page:        2,
			pageSize:    12,
			expected:    []int{13, 14, 15, 16, 17, 18, 19, 20},
			totalPages:  2,
			startIndex:  12,
			endIndex:    24,
			hasPrevious: true,
		},
		{
			name:        "Page beyond range is empty",
			page:        5,
			pageSize:    12,
			expected:    []int{},
			totalPages:  2,
			startIndex:  20,
			endIndex:    20,
			hasPrevious: true,
		},
		{
			name:        "Huge page number is empty",
			page:        1<<62 + 1,
			pageSize:    12,
			expected:    []int{},
			totalPages:  2,
			startIndex:  20,
			endIndex:    20,
			hasPrevious: true,
		},
		{
			name:       "Page zero is empty",
			page:       0,
			pageSize:   12,
			expected:   []int{},
			totalPages: 2,
			startIndex: 0,
			endIndex:   0,
			hasNext:    true,
		},
		{
			name:       "Exact multiple",
			page:       4,
			pageSize:   5,
			expected:   []int{16, 17, 18, 19, 20},
			totalPages: 4,
			startIndex: 15,
			endIndex:   20,

			hasPrevious: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(items, tt.page, tt.pageSize)

			assert.Equal(t, tt.expected, p.Items)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.startIndex, p.StartIndex)
			assert.Equal(t, tt.endIndex, p.EndIndex)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrevious, p.HasPrevious)
			assert.Equal(t, len(items), p.TotalItems)
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]string{}, 1, 12)

	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrevious)
}

func TestPaginate_InvalidPageSize(t *testing.T) {
	p := Paginate(makeItems(3), 1, 0)

	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
}

func TestPaginate_PagesReconstructInput(t *testing.T) {
	for _, n := range []int{0, 1, 11, 12, 13, 24, 25, 100} {
		for _, size := range []int{1, 5, 12, 50} {
			t.Run(fmt.Sprintf("n=%d size=%d", n, size), func(t *testing.T) {
				items := makeItems(n)
				first := Paginate(items, 1, size)

				var joined []int
				for page := 1; page <= first.TotalPages; page++ {
					p := Paginate(items, page, size)
					require.LessOrEqual(t, len(p.Items), size)
					joined = append(joined, p.Items...)
				}

				if n == 0 {
					assert.Empty(t, joined)
					return
				}
				assert.Equal(t, items, joined)
			})
		}
	}
}

func TestPaginate_ItemsDoNotAliasBeyondPage(t *testing.T) {
	items := makeItems(10)
	p := Paginate(items, 1, 4)

	p.Items = append(p.Items, 99)

	assert.Equal(t, 5, items[4], "appending to a page must not overwrite the source")
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(1, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestPage_Navigation(t *testing.T) {
	p := Paginate(makeItems(30), 2, 12)

	assert.Equal(t, []int{1, 2, 3}, p.Numbers())
	assert.Equal(t, 1, p.Prev())
	assert.Equal(t, 3, p.Next())

	last := Paginate(makeItems(30), 3, 12)
	assert.Equal(t, 3, last.Next())

	first := Paginate(makeItems(30), 1, 12)
	assert.Equal(t, 1, first.Prev())

	empty := Paginate([]int{}, 1, 12)
	assert.Empty(t, empty.Numbers())
	assert.Equal(t, 1, empty.Next())
}
