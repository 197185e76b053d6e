package ports

import (
	"github.com/thushan/holocron/internal/core/domain"
)

// Filter decides which records a FilterSpec keeps
type Filter interface {
	// Matches checks if a single record passes every active filter
	Matches(record domain.Record, spec domain.FilterSpec) bool

	// Apply returns the matching records in their original order
	Apply(records []domain.Record, spec domain.FilterSpec) []domain.Record
}

// DataView derives the visible slice of a record set
type DataView interface {
	DeriveView(records []domain.Record, filter domain.FilterSpec, sort *domain.SortSpec, paging domain.PagingState) domain.View
}
