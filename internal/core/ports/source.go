package ports

import (
	"context"

	"github.com/thushan/holocron/internal/core/domain"
)

// RecordSource yields the catalog's record set
type RecordSource interface {
	// FetchAll returns every record, in source order
	FetchAll(ctx context.Context) ([]domain.Record, error)

	// FetchOne returns a single record by its source id
	FetchOne(ctx context.Context, id string) (domain.Record, error)

	Name() string
}
