package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/thushan/holocron/internal/adapter/dataview"
	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/pkg/format"
)

type column struct {
	title string
	field domain.SortField
	width int
}

var recordColumns = []column{
	{title: "★", width: 2},
	{title: "Name", field: domain.SortByName, width: 24},
	{title: "Height", field: domain.SortByHeight, width: 9},
	{title: "Mass", field: domain.SortByMass, width: 9},
	{title: "Gender", field: domain.SortByGender, width: 13},
	{title: "Born", field: domain.SortByBirthYear, width: 9},
	{title: "Eyes", field: domain.SortByEyeColor, width: 13},
	{title: "Hair", field: domain.SortByHairColor, width: 14},
}

const maxNameWidth = 40

func columns(sort *domain.SortSpec, width int) []table.Column {
	used := 0
	for _, c := range recordColumns {
		// bubbles pads every cell by one on each side
		used += c.width + 2
	}

	cols := make([]table.Column, 0, len(recordColumns))
	for _, c := range recordColumns {
		title := c.title
		if sort != nil && c.field != "" && sort.Field == c.field {
			if sort.Direction == domain.SortDescending {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}

		w := c.width
		if c.field == domain.SortByName && width > used {
			w = min(w+width-used, maxNameWidth)
		}
		cols = append(cols, table.Column{Title: title, Width: w})
	}
	return cols
}

func (m Model) row(r domain.Record) table.Row {
	star := ""
	if m.favs != nil && m.favs.Contains(r.ID()) {
		star = "★"
	}
	return table.Row{
		star,
		r.Name,
		format.Height(r.Height),
		format.Mass(r.Mass),
		format.Value(r.Gender),
		format.Value(r.BirthYear),
		format.Value(r.EyeColor),
		format.Value(r.HairColor),
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.searchLine())
	b.WriteString("\n")

	if m.focus == focusFilters {
		b.WriteString(m.filters.View(m.styles))
		b.WriteString("\n")
	}

	scr := m.current()
	switch {
	case m.focus == focusDetails:
		if r, ok := m.selected(); ok {
			b.WriteString(m.details(r))
		}
	case len(scr.view.Visible) == 0:
		b.WriteString(m.styles.Muted.Render(m.emptyText()))
	default:
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	b.WriteString(m.footer())
	b.WriteString("\n")

	if m.toast != nil {
		b.WriteString(m.renderToast(*m.toast))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) header() string {
	tabs := make([]string, 0, screenCount)
	for kind := screenBrowse; kind < screenCount; kind++ {
		label := fmt.Sprintf("%s (%d)", format.Title(kind.String()), len(m.screens[kind].ctrl.Records()))
		if kind == m.active {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}

	parts := []string{m.styles.Title.Render("HOLOCRON"), strings.Join(tabs, " ")}

	scr := m.current()
	if n := scr.ctrl.Filter().ActiveCount(); n > 0 {
		parts = append(parts, m.styles.Badge.Render(format.Count(n, "filter")))
	}
	if s := scr.ctrl.Sort(); s != nil {
		parts = append(parts, m.styles.Muted.Render("sort "+s.String()))
	}
	if m.loading {
		parts = append(parts, m.spinner.View()+m.styles.Muted.Render(" fetching"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) searchLine() string {
	if m.focus == focusSearch || m.search.Value() != "" {
		return m.search.View()
	}
	return m.styles.Muted.Render("press / to search, f to filter")
}

func (m Model) emptyText() string {
	switch {
	case m.loading && m.active == screenBrowse:
		return "Loading records…"
	case m.active == screenFavorites && len(m.current().ctrl.Records()) == 0:
		return "No favorites yet, press space on a record to add one"
	default:
		return "No records match the current filters"
	}
}

func (m Model) footer() string {
	scr := m.current()
	v := scr.view

	from, to := v.ShowingRange()
	parts := []string{fmt.Sprintf("Showing %d-%d of %d", from, to, v.TotalFilteredCount)}

	switch {
	case v.Paging.Mode == domain.PagingDiscrete:
		if labels := m.pageLabels(v); labels != "" {
			parts = append(parts, labels)
		}
	case scr.ctrl.Loading():
		parts = append(parts, m.spinner.View()+" loading more")
	case v.HasMore:
		parts = append(parts, m.styles.Muted.Render("↓ more"))
	}

	parts = append(parts, m.styles.Muted.Render(fmt.Sprintf("%d/page · %s", v.Paging.PageSize, v.Paging.Mode)))
	return strings.Join(parts, "   ")
}

func (m Model) pageLabels(v domain.View) string {
	labels := dataview.Summarize(v.TotalPages, v.Paging.CurrentPage)
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if !l.Ellipsis && l.Page == v.Paging.CurrentPage {
			out = append(out, m.styles.ActivePage.Render(l.String()))
			continue
		}
		out = append(out, m.styles.Page.Render(l.String()))
	}
	return strings.Join(out, "")
}

func (m Model) details(r domain.Record) string {
	rows := [][2]string{
		{"Height", format.Height(r.Height)},
		{"Mass", format.Mass(r.Mass)},
		{"Hair", format.Value(r.HairColor)},
		{"Skin", format.Value(r.SkinColor)},
		{"Eyes", format.Value(r.EyeColor)},
		{"Born", format.Value(r.BirthYear)},
		{"Gender", format.Value(r.Gender)},
		{"Homeworld", format.Value(format.ResourceID(r.Homeworld))},
		{"Films", format.List(format.ResourceIDs(r.Films))},
		{"Species", format.List(format.ResourceIDs(r.Species))},
		{"Vehicles", format.List(format.ResourceIDs(r.Vehicles))},
		{"Starships", format.List(format.ResourceIDs(r.Starships))},
		{"Created", format.Value(r.Created)},
		{"Edited", format.Value(r.Edited)},
	}

	title := m.styles.Title.Render(r.Name)
	if m.favs != nil && m.favs.Contains(r.ID()) {
		title += " " + m.styles.Favorite.Render("★")
	}

	lines := []string{title}
	if r.URL != "" {
		lines = append(lines, m.styles.Muted.Render(r.URL))
	}
	for _, kv := range rows {
		lines = append(lines, m.styles.Label.Render(kv[0])+" "+m.styles.Value.Render(kv[1]))
	}
	lines = append(lines, m.styles.Muted.Render("space favorite · esc back"))
	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderToast(t toast) string {
	text := t.title
	if t.description != "" {
		text += ": " + t.description
	}
	if t.isError {
		return m.styles.ToastError.Render(text)
	}
	return m.styles.ToastInfo.Render(text)
}
