package domain

import (
	"fmt"
	"strings"
)

// PagingMode selects how pages are presented
type PagingMode string

const (
	// PagingDiscrete shows one page at a time
	PagingDiscrete PagingMode = "discrete"

	// PagingCumulative accumulates page-sized chunks, infinite scroll style
	PagingCumulative PagingMode = "cumulative"
)

const DefaultPageSize = 20

// PageSizes are the sizes offered by the page size selector
var PageSizes = []int{10, 20, 50, 100}

// PagingState describes which slice of the ordered records is visible.
// In cumulative mode CurrentPage counts the chunks loaded so far.
type PagingState struct {
	Mode        PagingMode `json:"mode" yaml:"mode"`
	PageSize    int        `json:"page_size" yaml:"page_size"`
	CurrentPage int        `json:"current_page" yaml:"current_page"`
}

// NewPagingState returns a state positioned on the first page
func NewPagingState(mode PagingMode, pageSize int) PagingState {
	return PagingState{Mode: mode, PageSize: pageSize, CurrentPage: 1}.Normalized()
}

// Normalized clamps the state into something the engine can slice with
func (p PagingState) Normalized() PagingState {
	if p.Mode != PagingCumulative {
		p.Mode = PagingDiscrete
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	return p
}

// WithMode switches mode and returns to the first page
func (p PagingState) WithMode(mode PagingMode) PagingState {
	p.Mode = mode
	p.CurrentPage = 1
	return p.Normalized()
}

// WithPageSize changes the page size and returns to the first page
func (p PagingState) WithPageSize(size int) PagingState {
	p.PageSize = size
	p.CurrentPage = 1
	return p.Normalized()
}

// WithPage moves to the given page without touching mode or size
func (p PagingState) WithPage(page int) PagingState {
	p.CurrentPage = page
	return p.Normalized()
}

// Bounds returns the half-open index range visible for n ordered records
func (p PagingState) Bounds(n int) (int, int) {
	p = p.Normalized()
	n = max(n, 0)

	start := 0
	if p.Mode != PagingCumulative {
		start = offset(p.CurrentPage-1, p.PageSize, n)
	}
	return start, offset(p.CurrentPage, p.PageSize, n)
}

// offset is pages*size capped at n, pages past the end never multiply so
// any positive page is safe
func offset(pages, size, n int) int {
	if pages <= 0 {
		return 0
	}
	if pages > n/size {
		return n
	}
	return pages * size
}

// ParsePagingMode accepts the config/CLI spelling, "infinite" and "pages"
// are accepted as aliases.
func ParsePagingMode(value string) (PagingMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(PagingDiscrete), "pages", "paged":
		return PagingDiscrete, nil
	case string(PagingCumulative), "infinite", "scroll":
		return PagingCumulative, nil
	default:
		return "", fmt.Errorf("unknown paging mode %q", value)
	}
}

// NextPageSize steps to the next larger (step > 0) or smaller offered size,
// sizes outside PageSizes snap to the nearest one in that direction
func NextPageSize(current, step int) int {
	if step > 0 {
		for _, size := range PageSizes {
			if size > current {
				return size
			}
		}
		return PageSizes[len(PageSizes)-1]
	}
	for i := len(PageSizes) - 1; i >= 0; i-- {
		if PageSizes[i] < current {
			return PageSizes[i]
		}
	}
	return PageSizes[0]
}
