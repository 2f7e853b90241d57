// Package pagination slices ordered collections into 1-indexed pages.
package pagination

// DefaultPageSize is the number of products shown per page.
const DefaultPageSize = 12

// Page is one bounded, contiguous slice of a collection plus its metadata.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	StartIndex  int  `json:"startIndex"`
	EndIndex    int  `json:"endIndex"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// Paginate returns the requested page of items. The page number is not clamped:
// a page outside [1, TotalPages] yields no items rather than an error, with
// StartIndex and EndIndex both at the nearer end of the collection.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(items),
	}
	if pageSize <= 0 {
		return p
	}

	p.TotalPages = TotalPages(len(items), pageSize)
	p.HasNext = page < p.TotalPages
	p.HasPrevious = page > 1

	switch {
	case page < 1:
		return p
	case page > p.TotalPages:
		p.StartIndex = len(items)
		p.EndIndex = len(items)
		return p
	}

	// page <= TotalPages, so the offset stays within len(items).
	p.StartIndex = (page - 1) * pageSize
	p.EndIndex = p.StartIndex + pageSize
	end := min(p.EndIndex, len(items))
	p.Items = items[p.StartIndex:end:end]

	return p
}

// TotalPages returns ceil(count/pageSize), zero for an empty collection.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Numbers lists the page numbers 1..TotalPages.
func (p Page[T]) Numbers() []int {
	numbers := make([]int, 0, p.TotalPages)
	for i := 1; i <= p.TotalPages; i++ {
		numbers = append(numbers, i)
	}
	return numbers
}

// Prev returns the previous page number, never below 1.
func (p Page[T]) Prev() int {
	return max(p.Page-1, 1)
}

// Next returns the next page number, never beyond the last page.
func (p Page[T]) Next() int {
	if p.TotalPages == 0 {
		return 1
	}
	return min(p.Page+1, p.TotalPages)
}
