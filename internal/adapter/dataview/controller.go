package dataview

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/core/ports"
)

// State is the last kind of interaction the controller processed
type State int

const (
	StateIdle State = iota
	StateFiltering
	StatePaginating
)

func (s State) String() string {
	switch s {
	case StateFiltering:
		return "filtering"
	case StatePaginating:
		return "paginating"
	default:
		return "idle"
	}
}

// Ticket identifies the generation a load-more was started in
type Ticket uint64

var ErrLoadMoreUnavailable = errors.New("nothing more to load")

// Controller owns the mutable state of one listing: records, filter, sort
// and paging. Every change that affects what is visible bumps the
// generation, which invalidates any load-more still waiting to complete.
type Controller struct {
	engine  ports.DataView
	records []domain.Record
	sort    *domain.SortSpec
	filter  domain.FilterSpec
	paging  domain.PagingState

	generation uint64
	state      State
	loading    bool

	mu sync.Mutex
}

func NewController(engine ports.DataView, paging domain.PagingState, sort *domain.SortSpec) *Controller {
	return &Controller{
		engine: engine,
		paging: paging.WithPage(1),
		sort:   cloneSort(sort),
	}
}

// View recomputes the visible state from scratch
func (c *Controller) View() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deriveLocked()
}

// SetRecords replaces the record set, typically after a reload
func (c *Controller) SetRecords(records []domain.Record) domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = slices.Clone(records)
	c.paging = c.paging.WithPage(1)
	c.state = StateIdle
	c.bumpLocked()
	return c.deriveLocked()
}

// SetFilter applies a new filter spec and returns to page 1. A spec that is
// effectively the same as the current one is a no-op.
func (c *Controller) SetFilter(spec domain.FilterSpec) domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if spec.Equal(c.filter) {
		return c.deriveLocked()
	}

	c.filter = spec
	c.paging = c.paging.WithPage(1)
	c.state = StateFiltering
	c.bumpLocked()
	return c.deriveLocked()
}

// ToggleSort mirrors a column header click
func (c *Controller) ToggleSort(field domain.SortField) domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setSortLocked(c.sort.Toggle(field))
}

// SetSort replaces the sort spec, nil restores source order
func (c *Controller) SetSort(sort *domain.SortSpec) domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setSortLocked(cloneSort(sort))
}

func (c *Controller) setSortLocked(sort *domain.SortSpec) domain.View {
	c.sort = sort
	c.paging = c.paging.WithPage(1)
	c.state = StateFiltering
	c.bumpLocked()
	return c.deriveLocked()
}

// SetPage jumps to a page, clamped to 1..TotalPages
func (c *Controller) SetPage(page int) domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPageLocked(page)
}

func (c *Controller) NextPage() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPageLocked(c.paging.CurrentPage + 1)
}

func (c *Controller) PrevPage() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPageLocked(c.paging.CurrentPage - 1)
}

func (c *Controller) setPageLocked(page int) domain.View {
	view := c.deriveLocked()
	page = max(1, min(page, view.TotalPages))
	return c.setPagingLocked(c.paging.WithPage(page))
}

// SetPageSize changes the page size and returns to page 1
func (c *Controller) SetPageSize(size int) domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPagingLocked(c.paging.WithPageSize(size))
}

// SetMode switches between discrete and cumulative paging, returning to page 1
func (c *Controller) SetMode(mode domain.PagingMode) domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPagingLocked(c.paging.WithMode(mode))
}

func (c *Controller) setPagingLocked(paging domain.PagingState) domain.View {
	c.paging = paging
	c.state = StatePaginating
	c.bumpLocked()
	return c.deriveLocked()
}

// BeginLoadMore starts appending the next chunk in cumulative mode. It
// fails when not in cumulative mode, nothing is left or a load is already
// in flight.
func (c *Controller) BeginLoadMore() (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading || c.paging.Mode != domain.PagingCumulative {
		return 0, false
	}
	if !c.deriveLocked().HasMore {
		return 0, false
	}

	c.loading = true
	c.state = StatePaginating
	return Ticket(c.generation), true
}

// CompleteLoadMore appends the next chunk if ticket is still current. A
// stale ticket (anything changed since BeginLoadMore) is discarded.
func (c *Controller) CompleteLoadMore(ticket Ticket) (domain.View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loading || uint64(ticket) != c.generation {
		return c.deriveLocked(), false
	}

	c.paging = c.paging.WithPage(c.paging.CurrentPage + 1)
	c.loading = false
	c.bumpLocked()
	return c.deriveLocked(), true
}

// CancelLoadMore abandons an in-flight load started with ticket
func (c *Controller) CancelLoadMore(ticket Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading && uint64(ticket) == c.generation {
		c.loading = false
		c.state = StateIdle
	}
}

// LoadMore begins a load, waits out the simulated latency and completes it.
// The returned bool is false when the result was superseded by another
// change while waiting.
func (c *Controller) LoadMore(ctx context.Context, delay time.Duration) (domain.View, bool, error) {
	ticket, ok := c.BeginLoadMore()
	if !ok {
		return c.View(), false, ErrLoadMoreUnavailable
	}

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			c.CancelLoadMore(ticket)
			return c.View(), false, ctx.Err()
		case <-timer.C:
		}
	}

	view, applied := c.CompleteLoadMore(ticket)
	return view, applied, nil
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *Controller) Filter() domain.FilterSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Controller) Sort() *domain.SortSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneSort(c.sort)
}

func (c *Controller) Paging() domain.PagingState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paging
}

// Records returns the full, unfiltered record set
func (c *Controller) Records() []domain.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.records)
}

// bumpLocked invalidates any pending load-more
func (c *Controller) bumpLocked() {
	c.generation++
	c.loading = false
}

func (c *Controller) deriveLocked() domain.View {
	return c.engine.DeriveView(c.records, c.filter, c.sort, c.paging)
}

func cloneSort(s *domain.SortSpec) *domain.SortSpec {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
