package dataview

import (
	"github.com/thushan/holocron/internal/adapter/filter"
	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/core/ports"
)

// Engine derives views from an in-memory record set. It holds no per-call
// state, so one engine can serve every screen.
type Engine struct {
	filter     ports.Filter
	comparator *Comparator
}

var _ ports.DataView = (*Engine)(nil)

func NewEngine(locale string) *Engine {
	return &Engine{
		filter:     filter.NewPredicateFilter(),
		comparator: NewComparator(locale),
	}
}

func (e *Engine) Comparator() *Comparator {
	return e.comparator
}

// DeriveView filters, sorts and slices records. The input slice is never
// modified.
func (e *Engine) DeriveView(records []domain.Record, spec domain.FilterSpec, sort *domain.SortSpec, paging domain.PagingState) domain.View {
	paging = paging.Normalized()

	// Apply always returns a fresh slice, so sorting it is safe
	ordered := e.filter.Apply(records, spec)
	e.comparator.Sort(ordered, sort)

	total := len(ordered)
	totalPages := TotalPages(total, paging.PageSize)

	start, end := paging.Bounds(total)
	visible := make([]domain.Record, end-start)
	copy(visible, ordered[start:end])

	return domain.View{
		Visible:            visible,
		Paging:             paging,
		TotalFilteredCount: total,
		TotalPages:         totalPages,
		HasMore:            hasMore(paging, totalPages),
	}
}

// TotalPages is ceil(count/pageSize), zero when there is nothing to show
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	pages := count / pageSize
	if count%pageSize != 0 {
		pages++
	}
	return pages
}

// hasMore holds in both modes: a cumulative view has shown
// CurrentPage*PageSize records, which is short of total exactly when pages remain
func hasMore(p domain.PagingState, totalPages int) bool {
	return p.CurrentPage < totalPages
}
