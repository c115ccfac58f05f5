package views

// DefaultPageSize is the number of rows per page
const DefaultPageSize = 10

// Pager slices a list into pages. It is not safe for concurrent use; the
// owning view serializes access.
type Pager[T any] struct {
	items []T
	size  int
	index int
}

// NewPager creates a pager. A size below one selects DefaultPageSize.
func NewPager[T any](size int) *Pager[T] {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Pager[T]{size: size}
}

// Set replaces the list. The page index is kept.
func (p *Pager[T]) Set(items []T) {
	p.items = items
}

// Items returns the whole list
func (p *Pager[T]) Items() []T {
	return p.items
}

// Len returns the length of the whole list
func (p *Pager[T]) Len() int {
	return len(p.items)
}

// SetPage selects a zero-based page and page size
func (p *Pager[T]) SetPage(index, size int) {
	if index < 0 {
		index = 0
	}
	if size >= 1 {
		p.size = size
	}
	p.index = index
}

// Index returns the zero-based page index
func (p *Pager[T]) Index() int {
	return p.index
}

// Size returns the page size
func (p *Pager[T]) Size() int {
	return p.size
}

// PageCount returns the number of non-empty pages
func (p *Pager[T]) PageCount() int {
	return (len(p.items) + p.size - 1) / p.size
}

// Page returns the rows of the current page, empty past the end
func (p *Pager[T]) Page() []T {
	start := p.index * p.size
	if start >= len(p.items) {
		return nil
	}
	end := start + p.size
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[start:end]
}
