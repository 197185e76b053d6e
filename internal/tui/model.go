package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thushan/holocron/internal/adapter/dataview"
	"github.com/thushan/holocron/internal/adapter/export"
	"github.com/thushan/holocron/internal/adapter/filter"
	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/core/ports"
	"github.com/thushan/holocron/internal/logger"
	"github.com/thushan/holocron/pkg/format"
	"github.com/thushan/holocron/theme"
)

const (
	toastDuration  = 4 * time.Second
	minTableHeight = 5

	// title, tabs, search, footer, help and toast lines
	chromeHeight = 9
)

type screenKind int

const (
	screenBrowse screenKind = iota
	screenFavorites
	screenCount
)

func (s screenKind) String() string {
	if s == screenFavorites {
		return "favorites"
	}
	return "people"
}

type focusArea int

const (
	focusTable focusArea = iota
	focusSearch
	focusFilters
	focusDetails
)

type screen struct {
	ctrl   *dataview.Controller
	view   domain.View
	cursor int
}

type toast struct {
	title       string
	description string
	id          int
	isError     bool
}

// Options configures the browser
type Options struct {
	Source        ports.RecordSource
	Favorites     ports.FavoritesStore
	Engine        *dataview.Engine
	Logger        *logger.StyledLogger
	Sort          *domain.SortSpec
	Theme         string
	ExportDir     string
	Paging        domain.PagingState
	LoadMoreDelay time.Duration
}

// Model is the bubbletea model for the catalog browser
type Model struct {
	ctx     context.Context
	source  ports.RecordSource
	favs    ports.FavoritesStore
	engine  *dataview.Engine
	log     *logger.StyledLogger
	toast   *toast
	screens [screenCount]*screen
	keys    keyMap
	styles  theme.Styles
	help    help.Model
	search  textinput.Model
	spinner spinner.Model
	table   table.Model
	filters filterPanel

	exportDir     string
	loadMoreDelay time.Duration
	active        screenKind
	focus         focusArea
	toastSeq      int
	width         int
	height        int
	loading       bool
}

// New builds the browser. Records are fetched when the program starts.
func New(ctx context.Context, opts Options) Model {
	if opts.Engine == nil {
		opts.Engine = dataview.NewEngine(dataview.DefaultLocale)
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	paging := opts.Paging.Normalized()

	styles := theme.NewStyles(opts.Theme)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search name, colours, homeworld…"
	search.CharLimit = 64

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.Spinner

	tbl := table.New(
		table.WithColumns(columns(opts.Sort, 0)),
		table.WithFocused(true),
		table.WithHeight(minTableHeight),
	)
	ts := table.DefaultStyles()
	ts.Header = styles.TableHeader
	ts.Cell = styles.TableCell
	ts.Selected = styles.Selected
	tbl.SetStyles(ts)

	m := Model{
		ctx:           ctx,
		source:        opts.Source,
		favs:          opts.Favorites,
		engine:        opts.Engine,
		log:           opts.Logger,
		keys:          defaultKeyMap(),
		styles:        styles,
		help:          help.New(),
		search:        search,
		spinner:       sp,
		table:         tbl,
		filters:       newFilterPanel(),
		exportDir:     opts.ExportDir,
		loadMoreDelay: opts.LoadMoreDelay,
		loading:       true,
	}
	for i := range m.screens {
		m.screens[i] = &screen{ctrl: dataview.NewController(opts.Engine, paging, opts.Sort)}
	}
	if m.favs != nil {
		m.screens[screenFavorites].view = m.screens[screenFavorites].ctrl.SetRecords(m.favs.All())
	}
	m.screens[screenBrowse].view = m.screens[screenBrowse].ctrl.View()
	m.syncTable()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.spinner.Tick)
}

func (m Model) current() *screen {
	return m.screens[m.active]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.syncTable()
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case recordsLoadedMsg:
		return m.onRecordsLoaded(msg)

	case loadMoreMsg:
		scr := m.screens[msg.screen]
		view, applied := scr.ctrl.CompleteLoadMore(msg.ticket)
		if !applied {
			m.log.Debug("Discarded stale load more", "screen", msg.screen.String(), "ticket", uint64(msg.ticket))
			return m, nil
		}
		scr.view = view
		if msg.screen == m.active {
			m.syncTable()
		}
		return m, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			return m, m.showError(msg.err)
		}
		m.refreshFavorites()
		if msg.added {
			m.log.InfoFavorite("Added favorite", msg.record.Name)
			return m, m.showInfo("Added to favorites", msg.record.Name)
		}
		m.log.InfoFavorite("Removed favorite", msg.record.Name)
		return m, m.showInfo("Removed from favorites", msg.record.Name)

	case favoritesClearedMsg:
		if msg.err != nil {
			return m, m.showError(msg.err)
		}
		m.refreshFavorites()
		return m, m.showInfo("Favorites cleared", format.Count(msg.count, "record")+" removed")

	case exportDoneMsg:
		if msg.err != nil {
			m.log.Error("Export failed", "path", msg.path, "error", msg.err)
			return m, m.showToast("Export Failed", msg.err.Error(), true)
		}
		m.log.InfoWithPath("Exported records", msg.path, "count", msg.count, "size", format.Bytes(msg.size))
		return m, m.showInfo("Exported "+format.Count(msg.count, "record"),
			fmt.Sprintf("%s (%s)", msg.path, format.Bytes(msg.size)))

	case toast:
		m.toastSeq++
		msg.id = m.toastSeq
		m.toast = &msg
		id := msg.id
		return m, tea.Tick(toastDuration, func(time.Time) tea.Msg { return clearToastMsg{id: id} })

	case clearToastMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil

	case ConfigChangedMsg:
		m.applyConfig(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) busy() bool {
	return m.loading || m.current().ctrl.Loading()
}

func (m Model) onRecordsLoaded(msg recordsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		// keep whatever was on screen, the user can retry with r
		m.log.Error("Failed to load records", "source", msg.source, "error", msg.err)
		return m, m.showError(msg.err)
	}

	browse := m.screens[screenBrowse]
	browse.view = browse.ctrl.SetRecords(msg.records)
	browse.cursor = 0
	m.filters.SetChoices(msg.records)
	m.syncTable()

	m.log.InfoWithCount("Loaded records from "+msg.source, len(msg.records), "elapsed", format.Duration(msg.elapsed))
	return m, m.showInfo("Loaded "+format.Count(len(msg.records), "record"), "from "+msg.source+" in "+format.Duration(msg.elapsed))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusFilters:
		return m.handleFilterKey(msg)
	case focusDetails:
		switch {
		case key.Matches(msg, m.keys.Back, m.keys.Details, m.keys.Quit):
			m.focus = focusTable
		case key.Matches(msg, m.keys.Favorite):
			return m, m.toggleFavoriteCmd()
		}
		return m, nil
	}

	scr := m.current()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.syncTable()

	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Filters):
		m.focus = focusFilters
		m.syncTable()
		return m, m.filters.Open()

	case key.Matches(msg, m.keys.Clear):
		m.search.SetValue("")
		m.filters.Load(domain.FilterSpec{})
		m.applyView(scr.ctrl.SetFilter(domain.FilterSpec{}))

	case key.Matches(msg, m.keys.Sort):
		m.applyView(scr.ctrl.SetSort(nextSort(scr.ctrl.Sort())))

	case key.Matches(msg, m.keys.Reverse):
		if s := scr.ctrl.Sort(); s != nil {
			m.applyView(scr.ctrl.SetSort(s.Reversed()))
		}

	case key.Matches(msg, m.keys.PrevPage):
		m.applyView(scr.ctrl.PrevPage())

	case key.Matches(msg, m.keys.NextPage):
		if scr.ctrl.Paging().Mode == domain.PagingCumulative {
			return m, m.loadMoreCmd()
		}
		m.applyView(scr.ctrl.NextPage())

	case key.Matches(msg, m.keys.Grow):
		m.applyView(scr.ctrl.SetPageSize(domain.NextPageSize(scr.ctrl.Paging().PageSize, 1)))

	case key.Matches(msg, m.keys.Shrink):
		m.applyView(scr.ctrl.SetPageSize(domain.NextPageSize(scr.ctrl.Paging().PageSize, -1)))

	case key.Matches(msg, m.keys.Mode):
		mode := domain.PagingCumulative
		if scr.ctrl.Paging().Mode == domain.PagingCumulative {
			mode = domain.PagingDiscrete
		}
		m.applyView(scr.ctrl.SetMode(mode))

	case key.Matches(msg, m.keys.Details):
		if _, ok := m.selected(); ok {
			m.focus = focusDetails
		}

	case key.Matches(msg, m.keys.Favorite):
		return m, m.toggleFavoriteCmd()

	case key.Matches(msg, m.keys.ClearFavs):
		if m.active == screenFavorites {
			return m, m.clearFavoritesCmd()
		}

	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.keys.Reload):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.fetchCmd(), m.spinner.Tick)

	case key.Matches(msg, m.keys.SwitchTab):
		scr.cursor = m.table.Cursor()
		m.active = (m.active + 1) % screenCount
		m.syncInputs()
		m.syncTable()

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		scr.cursor = m.table.Cursor()
		if key.Matches(msg, m.keys.Down) && m.atLastRow() {
			return m, tea.Batch(cmd, m.loadMoreCmd())
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.search.Blur()
		m.focus = focusTable
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	scr := m.current()
	spec := scr.ctrl.Filter()
	spec.Search = m.search.Value()
	m.applyView(scr.ctrl.SetFilter(spec))
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.filters.Close()
		m.focus = focusTable
		m.syncTable()
		return m, nil
	}

	var (
		cmd     tea.Cmd
		changed bool
	)
	m.filters, cmd, changed = m.filters.Update(msg)
	if changed {
		scr := m.current()
		spec := m.filters.Spec()
		spec.Search = scr.ctrl.Filter().Search
		m.applyView(scr.ctrl.SetFilter(spec))
	}
	return m, cmd
}

// applyView stores a view derived by the active controller. Changes that
// reset paging also move the cursor back to the top.
func (m *Model) applyView(view domain.View) {
	scr := m.current()
	if view.Paging.CurrentPage != scr.view.Paging.CurrentPage ||
		view.Paging.Mode != scr.view.Paging.Mode ||
		view.TotalFilteredCount != scr.view.TotalFilteredCount {
		scr.cursor = 0
	}
	scr.view = view
	m.syncTable()
}

func (m *Model) syncInputs() {
	spec := m.current().ctrl.Filter()
	m.search.SetValue(spec.Search)
	m.filters.Load(spec)
}

func (m *Model) syncTable() {
	scr := m.current()

	rows := make([]table.Row, 0, len(scr.view.Visible))
	for _, r := range scr.view.Visible {
		rows = append(rows, m.row(r))
	}

	m.table.SetColumns(columns(scr.ctrl.Sort(), m.width))
	m.table.SetRows(rows)

	height := m.height - chromeHeight
	if m.help.ShowAll {
		height -= 4
	}
	if m.focus == focusFilters {
		height -= int(fieldCount) + 3
	}
	if height < minTableHeight {
		height = minTableHeight
	}
	m.table.SetHeight(height)
	if m.width > 0 {
		m.table.SetWidth(m.width)
	}

	cursor := scr.cursor
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	m.table.SetCursor(cursor)
	scr.cursor = cursor
}

func (m *Model) refreshFavorites() {
	if m.favs == nil {
		return
	}
	scr := m.screens[screenFavorites]
	page := scr.ctrl.Paging().CurrentPage
	scr.ctrl.SetRecords(m.favs.All())
	scr.view = scr.ctrl.SetPage(page)
	m.syncTable()
}

func (m *Model) applyConfig(msg ConfigChangedMsg) {
	for kind, scr := range m.screens {
		paging := scr.ctrl.Paging()
		if msg.PageSize > 0 && msg.PageSize != paging.PageSize {
			m.log.InfoConfigChange("view.page_size", paging.PageSize, msg.PageSize)
			scr.view = scr.ctrl.SetPageSize(msg.PageSize)
		}
		if msg.Mode != "" && msg.Mode != paging.Mode {
			m.log.InfoConfigChange("view.mode", paging.Mode, msg.Mode)
			scr.view = scr.ctrl.SetMode(msg.Mode)
		}
		if screenKind(kind) == m.active {
			scr.cursor = m.table.Cursor()
		}
	}
	m.syncTable()
}

func (m Model) atLastRow() bool {
	scr := m.current()
	return len(scr.view.Visible) > 0 && m.table.Cursor() == len(scr.view.Visible)-1
}

func (m Model) selected() (domain.Record, bool) {
	scr := m.current()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(scr.view.Visible) {
		return domain.Record{}, false
	}
	return scr.view.Visible[idx], true
}

func (m Model) showError(err error) tea.Cmd {
	msg := domain.UserMessage(err)
	return m.showToast(msg.Title, msg.Description, true)
}

func (m Model) showInfo(title, description string) tea.Cmd {
	return m.showToast(title, description, false)
}

// showToast returns a command that displays a toast and later clears it.
// The toast is set through a message so value receivers stay correct.
func (m Model) showToast(title, description string, isError bool) tea.Cmd {
	t := toast{title: title, description: description, isError: isError}
	return func() tea.Msg { return t }
}

func (m Model) fetchCmd() tea.Cmd {
	ctx, src := m.ctx, m.source
	return func() tea.Msg {
		if src == nil {
			return recordsLoadedMsg{err: errors.New("no record source configured")}
		}
		start := time.Now()
		records, err := src.FetchAll(ctx)
		return recordsLoadedMsg{records: records, source: src.Name(), elapsed: time.Since(start), err: err}
	}
}

func (m Model) loadMoreCmd() tea.Cmd {
	scr := m.current()
	ticket, ok := scr.ctrl.BeginLoadMore()
	if !ok {
		return nil
	}
	kind := m.active
	return tea.Batch(
		m.spinner.Tick,
		tea.Tick(m.loadMoreDelay, func(time.Time) tea.Msg {
			return loadMoreMsg{screen: kind, ticket: ticket}
		}),
	)
}

func (m Model) toggleFavoriteCmd() tea.Cmd {
	r, ok := m.selected()
	if !ok || m.favs == nil {
		return nil
	}
	ctx, favs := m.ctx, m.favs
	return func() tea.Msg {
		if favs.Contains(r.ID()) {
			return favoriteToggledMsg{record: r, err: favs.Remove(ctx, r.ID())}
		}
		err := favs.Add(ctx, r)
		return favoriteToggledMsg{record: r, added: err == nil, err: err}
	}
}

func (m Model) clearFavoritesCmd() tea.Cmd {
	if m.favs == nil || m.favs.Len() == 0 {
		return nil
	}
	ctx, favs := m.ctx, m.favs
	return func() tea.Msg {
		count := favs.Len()
		return favoritesClearedMsg{count: count, err: favs.Clear(ctx)}
	}
}

// exportCmd writes every record matching the current filter, in the
// current sort order, not just the visible page
func (m Model) exportCmd() tea.Cmd {
	scr := m.current()
	records := filter.Apply(scr.ctrl.Records(), scr.ctrl.Filter())
	if len(records) == 0 {
		return m.showInfo("Nothing to export", "no records match the current filters")
	}
	m.engine.Comparator().Sort(records, scr.ctrl.Sort())

	path := filepath.Join(m.exportDir, export.FileName(m.active.String(), time.Now()))
	return func() tea.Msg {
		size, err := export.WriteXLSX(path, export.DefaultSheetName, records)
		return exportDoneMsg{path: path, size: size, count: len(records), err: err}
	}
}

// nextSort cycles the sortable scalar fields, ending with source order
func nextSort(current *domain.SortSpec) *domain.SortSpec {
	fields := sortableFields()
	if current == nil {
		return &domain.SortSpec{Field: fields[0], Direction: domain.SortAscending}
	}
	for i, f := range fields {
		if f == current.Field && i+1 < len(fields) {
			return &domain.SortSpec{Field: fields[i+1], Direction: domain.SortAscending}
		}
	}
	return nil
}

func sortableFields() []domain.SortField {
	fields := make([]domain.SortField, 0, len(domain.SortFields))
	for _, f := range domain.SortFields {
		if _, scalar := f.Value(domain.Record{}); scalar {
			fields = append(fields, f)
		}
	}
	return fields
}
