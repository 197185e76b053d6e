package dataview

import "github.com/thushan/holocron/internal/core/domain"

// maxFullPages is the largest page count rendered without ellipses
const maxFullPages = 7

// Summarize produces the labels for a pagination control. Page 1 and the
// last page are always present, gaps collapse into a single ellipsis.
func Summarize(totalPages, currentPage int) []domain.PageLabel {
	if totalPages <= 0 {
		return []domain.PageLabel{}
	}

	if totalPages <= maxFullPages {
		return pageRun(1, totalPages)
	}

	labels := make([]domain.PageLabel, 0, maxFullPages)
	labels = append(labels, domain.PageNumber(1))

	switch {
	case currentPage <= 4:
		labels = append(labels, pageRun(2, 5)...)
		labels = append(labels, domain.PageEllipsis())
	case currentPage >= totalPages-3:
		labels = append(labels, domain.PageEllipsis())
		labels = append(labels, pageRun(totalPages-4, totalPages-1)...)
	default:
		labels = append(labels, domain.PageEllipsis())
		labels = append(labels, pageRun(currentPage-1, currentPage+1)...)
		labels = append(labels, domain.PageEllipsis())
	}

	return append(labels, domain.PageNumber(totalPages))
}

func pageRun(from, to int) []domain.PageLabel {
	out := make([]domain.PageLabel, 0, to-from+1)
	for p := from; p <= to; p++ {
		out = append(out, domain.PageNumber(p))
	}
	return out
}
