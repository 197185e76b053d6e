package favorites

import (
	"context"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/thushan/holocron/internal/core/constants"
	"github.com/thushan/holocron/internal/core/ports"
)

// MemoryBackend keeps favorites for the lifetime of the process only
type MemoryBackend struct {
	entries *xsync.Map[string, ports.FavoriteEntry]
}

var _ ports.FavoritesBackend = (*MemoryBackend)(nil)

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: xsync.NewMap[string, ports.FavoriteEntry]()}
}

func (m *MemoryBackend) Name() string {
	return constants.FavoritesBackendMemory
}

func (m *MemoryBackend) Load(ctx context.Context) ([]ports.FavoriteEntry, error) {
	entries := make([]ports.FavoriteEntry, 0, m.entries.Size())
	m.entries.Range(func(_ string, entry ports.FavoriteEntry) bool {
		entries = append(entries, entry)
		return true
	})
	return entries, ctx.Err()
}

func (m *MemoryBackend) Put(ctx context.Context, entry ports.FavoriteEntry) error {
	m.entries.Store(entry.Record.ID(), entry)
	return nil
}

func (m *MemoryBackend) Delete(ctx context.Context, id string) error {
	m.entries.Delete(id)
	return nil
}

func (m *MemoryBackend) Clear(ctx context.Context) error {
	m.entries.Clear()
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
