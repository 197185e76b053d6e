package tui

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thushan/holocron/internal/adapter/dataview"
	"github.com/thushan/holocron/internal/adapter/favorites"
	"github.com/thushan/holocron/internal/adapter/filter"
	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/logger"
	"github.com/thushan/holocron/internal/testutil"
	"github.com/thushan/holocron/pkg/format"
)

type fakeSource struct {
	err     error
	records []domain.Record
	calls   atomic.Int32
}

func (f *fakeSource) FetchAll(ctx context.Context) ([]domain.Record, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeSource) FetchOne(ctx context.Context, id string) (domain.Record, error) {
	for _, r := range f.records {
		if r.ID() == id {
			return r, nil
		}
	}
	return domain.Record{}, &domain.ClientError{URL: id, StatusCode: 404}
}

func (f *fakeSource) Name() string { return "fake" }

type harness struct {
	src  *fakeSource
	favs *favorites.Set
	m    Model
}

func newHarness(t *testing.T, mode domain.PagingMode) *harness {
	t.Helper()
	ctx := context.Background()

	favs, err := favorites.Open(ctx, favorites.NewMemoryBackend(), logger.NewNop())
	require.NoError(t, err)

	src := &fakeSource{records: testutil.People()}
	m := New(ctx, Options{
		Source:        src,
		Favorites:     favs,
		Engine:        dataview.NewEngine("en"),
		Paging:        domain.NewPagingState(mode, 5),
		LoadMoreDelay: time.Millisecond,
		ExportDir:     t.TempDir(),
	})

	h := &harness{src: src, favs: favs, m: m}
	h.deliver(t, m.fetchCmd()())
	return h
}

// collect runs cmd, expanding batches, skipping spinner ticks
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return nil
	}
	return []tea.Msg{msg}
}

// deliver feeds msgs to the model and applies any toast they produce
func (h *harness) deliver(t *testing.T, msgs ...tea.Msg) {
	t.Helper()
	for _, msg := range msgs {
		next, cmd := h.m.Update(msg)
		h.m = next.(Model)
		if _, isToast := msg.(toast); isToast || cmd == nil {
			continue
		}
		for _, out := range collect(cmd) {
			if tm, ok := out.(toast); ok {
				next, _ = h.m.Update(tm)
				h.m = next.(Model)
			}
		}
	}
}

// press sends keys without running the commands they return
func (h *harness) press(t *testing.T, keys ...string) tea.Cmd {
	t.Helper()
	var last tea.Cmd
	for _, k := range keys {
		next, cmd := h.m.Update(keyMsg(k))
		h.m = next.(Model)
		last = cmd
	}
	return last
}

func (h *harness) view() domain.View {
	return h.m.current().view
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestModel_InitialLoad(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)

	assert.False(t, h.m.loading)
	assert.Equal(t, int32(1), h.src.calls.Load())

	v := h.view()
	assert.Equal(t, 15, v.TotalFilteredCount)
	assert.Equal(t, 3, v.TotalPages)
	assert.Len(t, v.Visible, 5)

	require.NotNil(t, h.m.toast)
	assert.Equal(t, "Loaded 15 records", h.m.toast.title)

	out := h.m.View()
	assert.Contains(t, out, "Showing 1-5 of 15")
	assert.Contains(t, out, "People (15)")
	assert.Contains(t, out, "Favorites (0)")
}

func TestModel_ReloadFailureKeepsRecords(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)
	h.src.err = &domain.FetchError{
		Source: "fake", Operation: "fetch", URL: "x", Attempts: 4,
		Err: &domain.ServerError{URL: "x", StatusCode: 503},
	}

	h.press(t, "r")
	assert.True(t, h.m.loading)

	// a second reload while one is in flight is ignored
	assert.Nil(t, h.press(t, "r"))

	h.deliver(t, h.m.fetchCmd()())
	assert.False(t, h.m.loading)
	assert.Equal(t, 15, h.view().TotalFilteredCount)

	require.NotNil(t, h.m.toast)
	assert.True(t, h.m.toast.isError)
	assert.Equal(t, "Service Unavailable", h.m.toast.title)
}

func TestModel_Search(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)

	h.press(t, "/", "s", "k", "y")
	assert.Equal(t, focusSearch, h.m.focus)

	want := filter.Apply(testutil.People(), domain.FilterSpec{Search: "sky"})
	assert.Equal(t, len(want), h.view().TotalFilteredCount)
	assert.Equal(t, "sky", h.m.current().ctrl.Filter().Search)

	// keys go to the search box, not the table bindings
	assert.Equal(t, 1, h.view().Paging.CurrentPage)

	h.press(t, "esc")
	assert.Equal(t, focusTable, h.m.focus)
	assert.Equal(t, "sky", h.m.search.Value())

	h.press(t, "c")
	assert.Equal(t, 15, h.view().TotalFilteredCount)
	assert.Empty(t, h.m.search.Value())
}

func TestModel_DiscretePaging(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)

	h.press(t, "down", "down")
	assert.Equal(t, 2, h.m.table.Cursor())

	h.press(t, "right")
	assert.Equal(t, 2, h.view().Paging.CurrentPage)
	assert.Equal(t, 0, h.m.table.Cursor())
	assert.Equal(t, "Owen Lars", h.view().Visible[0].Name)

	h.press(t, "right", "right")
	assert.Equal(t, 3, h.view().Paging.CurrentPage, "clamped to the last page")

	h.press(t, "left")
	assert.Equal(t, 2, h.view().Paging.CurrentPage)

	h.press(t, "+")
	assert.Equal(t, 10, h.view().Paging.PageSize)
	assert.Equal(t, 1, h.view().Paging.CurrentPage)

	assert.Contains(t, h.m.View(), "Showing 1-10 of 15")
}

func TestModel_SortCycling(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)
	require.Nil(t, h.m.current().ctrl.Sort())

	h.press(t, "s")
	sort := h.m.current().ctrl.Sort()
	require.NotNil(t, sort)
	assert.Equal(t, domain.SortByName, sort.Field)
	assert.Equal(t, "Arvel Crynyd", h.view().Visible[0].Name)
	assert.Contains(t, h.m.View(), "Name ▲")

	h.press(t, "S")
	assert.Equal(t, domain.SortDescending, h.m.current().ctrl.Sort().Direction)
	assert.Equal(t, "Yoda", h.view().Visible[0].Name)
	assert.Contains(t, h.m.View(), "Name ▼")

	h.press(t, "s")
	assert.Equal(t, domain.SortByHeight, h.m.current().ctrl.Sort().Field)
}

func TestNextSort(t *testing.T) {
	s := nextSort(nil)
	require.NotNil(t, s)
	assert.Equal(t, domain.SortByName, s.Field)

	seen := map[domain.SortField]bool{}
	for s != nil {
		seen[s.Field] = true
		s = nextSort(s)
	}
	assert.False(t, seen[domain.SortByFilms], "list fields never order")
	assert.False(t, seen[domain.SortBySpecies])
	assert.True(t, seen[domain.SortByEdited])
}

func TestModel_CumulativeLoadMore(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)

	h.press(t, "m")
	require.Equal(t, domain.PagingCumulative, h.view().Paging.Mode)
	require.Len(t, h.view().Visible, 5)

	h.press(t, "down", "down", "down")
	assert.False(t, h.m.current().ctrl.Loading())

	cmd := h.press(t, "down")
	require.NotNil(t, cmd)
	assert.True(t, h.m.current().ctrl.Loading())
	assert.Contains(t, h.m.View(), "loading more")

	h.deliver(t, collect(cmd)...)
	assert.False(t, h.m.current().ctrl.Loading())
	assert.Len(t, h.view().Visible, 10)
	assert.Equal(t, 4, h.m.table.Cursor(), "cursor stays on the row that triggered the load")

	// right arrow also loads the next chunk in cumulative mode
	h.deliver(t, collect(h.press(t, "right"))...)
	assert.Len(t, h.view().Visible, 15)
	assert.False(t, h.view().HasMore)

	assert.Nil(t, h.press(t, "right"), "nothing left to load")
}

func TestModel_StaleLoadMoreDiscarded(t *testing.T) {
	h := newHarness(t, domain.PagingCumulative)

	cmd := h.press(t, "right")
	require.NotNil(t, cmd)
	pending := collect(cmd)
	require.Len(t, pending, 1)

	// the filter changes while the load is waiting
	h.press(t, "f", "right")
	h.press(t, "esc")
	males := filter.Apply(testutil.People(), domain.FilterSpec{Gender: "male"})
	require.Equal(t, len(males), h.view().TotalFilteredCount)

	h.deliver(t, pending...)
	assert.Len(t, h.view().Visible, 5, "stale completion must not append")
	assert.Equal(t, 1, h.view().Paging.CurrentPage)
}

func TestModel_FilterPanel(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)

	h.press(t, "f")
	assert.Equal(t, focusFilters, h.m.focus)
	assert.Contains(t, h.m.View(), "Height min")

	h.press(t, "right")
	assert.Equal(t, "male", h.m.current().ctrl.Filter().Gender)

	h.press(t, "right")
	assert.Equal(t, "n/a", h.m.current().ctrl.Filter().Gender)

	h.press(t, "left", "left")
	assert.Empty(t, h.m.current().ctrl.Filter().Gender, "cycles back to any")

	// height min is a free text field
	h.press(t, "down", "down", "down", "1", "8", "0")
	spec := h.m.current().ctrl.Filter()
	assert.Equal(t, "180", spec.HeightMin)
	want := filter.Apply(testutil.People(), domain.FilterSpec{HeightMin: "180"})
	assert.Equal(t, len(want), h.view().TotalFilteredCount)
	assert.Equal(t, 1, spec.ActiveCount())
	assert.Contains(t, h.m.View(), "1 filter")

	h.press(t, "esc")
	assert.Equal(t, focusTable, h.m.focus)

	h.press(t, "c")
	assert.True(t, h.m.current().ctrl.Filter().IsEmpty())
	assert.Equal(t, 15, h.view().TotalFilteredCount)
}

func TestModel_Favorites(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)

	h.deliver(t, collect(h.press(t, " "))...)
	assert.Equal(t, 1, h.favs.Len())
	assert.True(t, h.favs.Contains(testutil.People()[0].ID()))
	assert.Equal(t, "Added to favorites", h.m.toast.title)
	assert.Equal(t, "★", h.m.table.Rows()[0][0])

	h.press(t, "down")
	h.deliver(t, collect(h.press(t, " "))...)
	assert.Equal(t, 2, h.favs.Len())

	h.press(t, "tab")
	assert.Equal(t, screenFavorites, h.m.active)
	assert.Equal(t, 2, h.view().TotalFilteredCount)
	assert.Equal(t, []string{"Luke Skywalker", "C-3PO"}, testutil.Names(h.view().Visible))

	// removing from the favorites screen
	h.deliver(t, collect(h.press(t, " "))...)
	assert.Equal(t, 1, h.favs.Len())
	assert.Equal(t, []string{"C-3PO"}, testutil.Names(h.view().Visible))

	h.deliver(t, collect(h.press(t, "x"))...)
	assert.Equal(t, 0, h.favs.Len())
	assert.Equal(t, 0, h.view().TotalFilteredCount)
	assert.Contains(t, h.m.View(), "No favorites yet")

	h.press(t, "tab")
	assert.Equal(t, screenBrowse, h.m.active)
	assert.Equal(t, 1, h.m.table.Cursor(), "browse cursor is restored")
}

func TestModel_ClearFavoritesOnlyOnFavoritesScreen(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)
	h.deliver(t, collect(h.press(t, " "))...)
	require.Equal(t, 1, h.favs.Len())

	assert.Nil(t, h.press(t, "x"))
	assert.Equal(t, 1, h.favs.Len())
}

func TestModel_ScreensKeepSeparateState(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)
	h.deliver(t, collect(h.press(t, " "))...)

	h.press(t, "/", "l", "u", "k", "e", "esc")
	assert.Equal(t, 1, h.view().TotalFilteredCount)

	h.press(t, "tab")
	assert.Empty(t, h.m.search.Value())
	assert.Equal(t, 1, h.view().TotalFilteredCount)

	h.press(t, "tab")
	assert.Equal(t, "luke", h.m.search.Value())
}

func TestModel_Details(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)

	h.press(t, "down", "enter")
	assert.Equal(t, focusDetails, h.m.focus)

	out := h.m.View()
	assert.Contains(t, out, "C-3PO")
	assert.Contains(t, out, "Homeworld")
	assert.Contains(t, out, "167 cm")

	h.press(t, "esc")
	assert.Equal(t, focusTable, h.m.focus)
}

func TestModel_Export(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)

	h.press(t, "f", "right", "esc")
	males := filter.Apply(testutil.People(), domain.FilterSpec{Gender: "male"})

	h.deliver(t, collect(h.press(t, "e"))...)
	require.NotNil(t, h.m.toast)
	require.False(t, h.m.toast.isError, h.m.toast.description)
	assert.Equal(t, "Exported "+format.Count(len(males), "record"), h.m.toast.title)

	entries, err := os.ReadDir(h.m.exportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "holocron-people-")
}

func TestModel_ExportNothing(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)
	h.press(t, "tab")

	h.deliver(t, collect(h.press(t, "e"))...)
	require.NotNil(t, h.m.toast)
	assert.Equal(t, "Nothing to export", h.m.toast.title)
}

func TestModel_ConfigChanged(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)

	h.deliver(t, ConfigChangedMsg{PageSize: 10, Mode: domain.PagingCumulative})
	for _, scr := range h.m.screens {
		assert.Equal(t, 10, scr.ctrl.Paging().PageSize)
		assert.Equal(t, domain.PagingCumulative, scr.ctrl.Paging().Mode)
	}
	assert.Len(t, h.view().Visible, 10)

	gen := h.m.current().ctrl.Generation()
	h.deliver(t, ConfigChangedMsg{PageSize: 10, Mode: domain.PagingCumulative})
	assert.Equal(t, gen, h.m.current().ctrl.Generation(), "unchanged values are a no-op")
}

func TestModel_Quit(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)

	cmd := h.press(t, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ToastExpires(t *testing.T) {
	h := newHarness(t, domain.PagingDiscrete)
	require.NotNil(t, h.m.toast)

	h.deliver(t, clearToastMsg{id: h.m.toast.id - 1})
	assert.NotNil(t, h.m.toast, "an older toast's timer does not clear a newer one")

	h.deliver(t, clearToastMsg{id: h.m.toast.id})
	assert.Nil(t, h.m.toast)
}
