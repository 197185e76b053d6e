package domain

import "strconv"

// Ellipsis is how a collapsed run of pages is rendered
const Ellipsis = "…"

// View is the derived, visible state of a catalog listing
type View struct {
	Visible            []Record
	Paging             PagingState
	TotalFilteredCount int
	TotalPages         int
	HasMore            bool
}

// ShowingRange returns the 1-based inclusive range of records on screen for
// the "Showing X-Y of N" line, or 0,0 when nothing matched.
func (v View) ShowingRange() (int, int) {
	if len(v.Visible) == 0 {
		return 0, 0
	}
	start, end := v.Paging.Bounds(v.TotalFilteredCount)
	return start + 1, end
}

// PageLabel is one entry of a pagination control: a page number or an
// ellipsis marker.
type PageLabel struct {
	Page     int
	Ellipsis bool
}

func (l PageLabel) String() string {
	if l.Ellipsis {
		return Ellipsis
	}
	return strconv.Itoa(l.Page)
}

// PageNumber builds a numbered label
func PageNumber(page int) PageLabel {
	return PageLabel{Page: page}
}

// PageEllipsis builds a gap marker
func PageEllipsis() PageLabel {
	return PageLabel{Ellipsis: true}
}
