package ports

import (
	"context"

	"github.com/thushan/holocron/internal/core/domain"
)

// FavoritesStore is a persisted set of records keyed by Record.ID
type FavoritesStore interface {
	Contains(id string) bool
	Add(ctx context.Context, record domain.Record) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error

	// All returns the favorites in the order they were added
	All() []domain.Record
	Len() int
	Close() error
}

// FavoriteEntry is a persisted favorite, Seq preserves insertion order
type FavoriteEntry struct {
	Record domain.Record `json:"record"`
	Seq    uint64        `json:"seq"`
}

// FavoritesBackend persists favorite entries under a fixed namespace
type FavoritesBackend interface {
	Load(ctx context.Context) ([]FavoriteEntry, error)
	Put(ctx context.Context, entry FavoriteEntry) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Name() string
	Close() error
}
