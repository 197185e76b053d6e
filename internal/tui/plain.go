package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/thushan/holocron/internal/adapter/dataview"
	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/util"
	"github.com/thushan/holocron/pkg/format"
)

// RenderPlain prints a single derived view as a table followed by the
// paging line, for non-interactive output
func RenderPlain(w io.Writer, view domain.View, isFavorite func(id string) bool) error {
	if len(view.Visible) == 0 {
		_, err := fmt.Fprintln(w, "No records match the current filters")
		return err
	}

	nameWidth := plainNameWidth(w)

	data := pterm.TableData{{"", "Name", "Height", "Mass", "Gender", "Born", "Eyes", "Hair"}}
	for _, r := range view.Visible {
		star := ""
		if isFavorite != nil && isFavorite(r.ID()) {
			star = "★"
		}
		data = append(data, []string{
			star,
			plainName(r.Name, nameWidth),
			format.Height(r.Height),
			format.Mass(r.Mass),
			format.Value(r.Gender),
			format.Value(r.BirthYear),
			format.Value(r.EyeColor),
			format.Value(r.HairColor),
		})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	if _, err := fmt.Fprintln(w, rendered); err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, pagingLine(view))
	return err
}

// fixed width of every column except Name, separators included
const plainFixedWidth = 64

// plainNameWidth only constrains names when printing to a real terminal,
// piped output keeps full names
func plainNameWidth(w io.Writer) int {
	if w != os.Stdout || !util.IsTerminal() {
		return 0
	}
	width, _ := util.TerminalSize()
	return max(12, width-plainFixedWidth)
}

func plainName(name string, width int) string {
	if width <= 0 {
		return name
	}
	return format.Truncate(name, width)
}

// pagingLine is the plain text footer, the current page is bracketed
func pagingLine(view domain.View) string {
	from, to := view.ShowingRange()
	line := fmt.Sprintf("Showing %d-%d of %d", from, to, view.TotalFilteredCount)

	if view.Paging.Mode == domain.PagingCumulative {
		if view.HasMore {
			line += " · more available"
		}
		return line
	}

	labels := dataview.Summarize(view.TotalPages, view.Paging.CurrentPage)
	pages := make([]string, 0, len(labels))
	for _, l := range labels {
		if !l.Ellipsis && l.Page == view.Paging.CurrentPage {
			pages = append(pages, "["+l.String()+"]")
			continue
		}
		pages = append(pages, l.String())
	}
	return line + " · pages: " + strings.Join(pages, " ")
}
