package dataview

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/testutil"
)

func newTestController(mode domain.PagingMode, n int) *Controller {
	c := NewController(NewEngine("en"), domain.NewPagingState(mode, 10), nil)
	c.SetRecords(testutil.Numbered(n))
	return c
}

func TestController_SetFilterResetsPage(t *testing.T) {
	c := newTestController(domain.PagingDiscrete, 47)
	c.SetPage(3)
	gen := c.Generation()

	view := c.SetFilter(domain.FilterSpec{Gender: "male"})
	assert.Equal(t, StateFiltering, c.State())
	assert.Equal(t, 1, view.Paging.CurrentPage)
	assert.Equal(t, 16, view.TotalFilteredCount)
	assert.Greater(t, c.Generation(), gen)
}

func TestController_EquivalentFilterIsNoop(t *testing.T) {
	c := newTestController(domain.PagingDiscrete, 47)
	c.SetPage(2)
	gen := c.Generation()

	view := c.SetFilter(domain.FilterSpec{Gender: domain.AnyValue})
	assert.Equal(t, gen, c.Generation())
	assert.Equal(t, 2, view.Paging.CurrentPage)
}

func TestController_SetPageClamps(t *testing.T) {
	c := newTestController(domain.PagingDiscrete, 47)

	assert.Equal(t, 5, c.SetPage(99).Paging.CurrentPage)
	assert.Equal(t, StatePaginating, c.State())
	assert.Equal(t, 1, c.SetPage(-3).Paging.CurrentPage)

	c.SetFilter(domain.FilterSpec{Search: "nobody"})
	assert.Equal(t, 1, c.SetPage(4).Paging.CurrentPage)
}

func TestController_NextPrev(t *testing.T) {
	c := newTestController(domain.PagingDiscrete, 25)

	assert.Equal(t, 2, c.NextPage().Paging.CurrentPage)
	assert.Equal(t, 3, c.NextPage().Paging.CurrentPage)
	assert.Equal(t, 3, c.NextPage().Paging.CurrentPage)
	assert.Equal(t, 2, c.PrevPage().Paging.CurrentPage)
}

func TestController_ConcurrentNextPage(t *testing.T) {
	c := NewController(NewEngine("en"), domain.NewPagingState(domain.PagingDiscrete, 1), nil)
	c.SetRecords(testutil.Numbered(50))
	gen := c.Generation()

	const workers, steps = 8, 5
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range steps {
				c.NextPage()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1+workers*steps, c.Paging().CurrentPage)
	assert.Equal(t, gen+workers*steps, c.Generation())

	for range workers * steps {
		c.PrevPage()
	}
	assert.Equal(t, 1, c.Paging().CurrentPage)
}

func TestController_PageSizeAndModeReturnToFirstPage(t *testing.T) {
	c := newTestController(domain.PagingDiscrete, 47)
	c.SetPage(3)

	view := c.SetPageSize(20)
	assert.Equal(t, 1, view.Paging.CurrentPage)
	assert.Equal(t, 3, view.TotalPages)

	c.SetPage(2)
	view = c.SetMode(domain.PagingCumulative)
	assert.Equal(t, domain.PagingCumulative, view.Paging.Mode)
	assert.Equal(t, 1, view.Paging.CurrentPage)
}

func TestController_ToggleSort(t *testing.T) {
	c := newTestController(domain.PagingDiscrete, 15)
	c.SetPage(2)

	view := c.ToggleSort(domain.SortByName)
	assert.Equal(t, domain.SortAscending, c.Sort().Direction)
	assert.Equal(t, 1, view.Paging.CurrentPage)
	assert.Equal(t, "Person 001", view.Visible[0].Name)

	view = c.ToggleSort(domain.SortByName)
	assert.Equal(t, domain.SortDescending, c.Sort().Direction)
	assert.Equal(t, "Person 015", view.Visible[0].Name)

	c.SetSort(nil)
	assert.Nil(t, c.Sort())
}

func TestController_LoadMore(t *testing.T) {
	c := newTestController(domain.PagingCumulative, 25)

	ticket, ok := c.BeginLoadMore()
	require.True(t, ok)
	assert.True(t, c.Loading())

	_, again := c.BeginLoadMore()
	assert.False(t, again, "only one load in flight")

	view, applied := c.CompleteLoadMore(ticket)
	assert.True(t, applied)
	assert.False(t, c.Loading())
	assert.Len(t, view.Visible, 20)
	assert.True(t, view.HasMore)

	view, applied, err := c.LoadMore(context.Background(), 0)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Len(t, view.Visible, 25)
	assert.False(t, view.HasMore)

	_, _, err = c.LoadMore(context.Background(), 0)
	assert.ErrorIs(t, err, ErrLoadMoreUnavailable)
}

func TestController_LoadMoreRequiresCumulative(t *testing.T) {
	c := newTestController(domain.PagingDiscrete, 25)

	_, ok := c.BeginLoadMore()
	assert.False(t, ok)
}

func TestController_StaleLoadMoreIsDiscarded(t *testing.T) {
	tests := []struct {
		name   string
		change func(c *Controller)
	}{
		{"filter change", func(c *Controller) { c.SetFilter(domain.FilterSpec{Gender: "female"}) }},
		{"mode change", func(c *Controller) { c.SetMode(domain.PagingCumulative) }},
		{"page size change", func(c *Controller) { c.SetPageSize(10) }},
		{"sort change", func(c *Controller) { c.ToggleSort(domain.SortByHeight) }},
		{"reload", func(c *Controller) { c.SetRecords(testutil.Numbered(40)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(domain.PagingCumulative, 47)

			ticket, ok := c.BeginLoadMore()
			require.True(t, ok)

			tt.change(c)

			view, applied := c.CompleteLoadMore(ticket)
			assert.False(t, applied)
			assert.Equal(t, 1, view.Paging.CurrentPage)
			assert.LessOrEqual(t, len(view.Visible), 10)
			assert.False(t, c.Loading())
		})
	}
}

func TestController_LoadMoreCancelled(t *testing.T) {
	c := newTestController(domain.PagingCumulative, 47)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	view, applied, err := c.LoadMore(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, applied)
	assert.Len(t, view.Visible, 10)
	assert.False(t, c.Loading())
}

func TestController_LoadMoreSupersededWhileWaiting(t *testing.T) {
	c := newTestController(domain.PagingCumulative, 47)

	done := make(chan bool, 1)
	go func() {
		_, applied, _ := c.LoadMore(context.Background(), 200*time.Millisecond)
		done <- applied
	}()

	require.Eventually(t, c.Loading, time.Second, 5*time.Millisecond)
	c.SetFilter(domain.FilterSpec{Gender: "male"})

	assert.False(t, <-done)
	assert.Equal(t, 1, c.Paging().CurrentPage)
}

func TestController_SetRecordsCopiesInput(t *testing.T) {
	c := NewController(NewEngine("en"), domain.NewPagingState(domain.PagingDiscrete, 10), nil)
	records := testutil.Numbered(3)

	c.SetRecords(records)
	records[0].Name = "changed"

	assert.Equal(t, "Person 001", c.Records()[0].Name)
	assert.Equal(t, StateIdle, c.State())
}
