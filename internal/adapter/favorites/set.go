package favorites

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/core/ports"
	"github.com/thushan/holocron/internal/logger"
)

// Set is the favorites list: an ordered in-memory snapshot that writes
// through to a backend. Membership is by Record.ID.
type Set struct {
	backend ports.FavoritesBackend
	logger  *logger.StyledLogger
	index   map[string]int
	entries []ports.FavoriteEntry
	nextSeq uint64
	mu      sync.RWMutex
}

var _ ports.FavoritesStore = (*Set)(nil)

// Open restores the favorites persisted in backend
func Open(ctx context.Context, backend ports.FavoritesBackend, log *logger.StyledLogger) (*Set, error) {
	entries, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("restoring favorites from %s: %w", backend.Name(), err)
	}

	slices.SortStableFunc(entries, func(a, b ports.FavoriteEntry) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		}
		return 0
	})

	s := &Set{
		backend: backend,
		logger:  log,
		index:   make(map[string]int, len(entries)),
		entries: make([]ports.FavoriteEntry, 0, len(entries)),
	}
	for _, e := range entries {
		id := e.Record.ID()
		if _, dup := s.index[id]; dup || id == "" {
			continue
		}
		s.index[id] = len(s.entries)
		s.entries = append(s.entries, e)
		s.nextSeq = max(s.nextSeq, e.Seq+1)
	}

	log.InfoWithCount("Restored favorites from "+backend.Name(), len(s.entries))
	return s, nil
}

func (s *Set) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// Add stores record, adding an id that is already present is a no-op
func (s *Set) Add(ctx context.Context, record domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := record.ID()
	if id == "" {
		return fmt.Errorf("cannot favorite a record without an id")
	}
	if _, ok := s.index[id]; ok {
		return nil
	}

	entry := ports.FavoriteEntry{Record: record.Clone(), Seq: s.nextSeq}
	if err := s.backend.Put(ctx, entry); err != nil {
		return fmt.Errorf("saving favorite %s: %w", record.Name, err)
	}

	s.nextSeq++
	s.index[id] = len(s.entries)
	s.entries = append(s.entries, entry)
	s.logger.InfoFavorite("Added favorite", record.Name)
	return nil
}

// Remove deletes id, removing an unknown id is a no-op
func (s *Set) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return nil
	}
	if err := s.backend.Delete(ctx, id); err != nil {
		return fmt.Errorf("removing favorite %s: %w", id, err)
	}

	name := s.entries[pos].Record.Name
	s.entries = slices.Delete(s.entries, pos, pos+1)
	s.reindexLocked()
	s.logger.Info("Removed favorite", "name", name)
	return nil
}

// Toggle adds record if absent and removes it otherwise, returning whether
// it is a favorite afterwards
func (s *Set) Toggle(ctx context.Context, record domain.Record) (bool, error) {
	if s.Contains(record.ID()) {
		return false, s.Remove(ctx, record.ID())
	}
	return true, s.Add(ctx, record)
}

func (s *Set) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Clear(ctx); err != nil {
		return fmt.Errorf("clearing favorites: %w", err)
	}
	s.entries = s.entries[:0]
	s.index = make(map[string]int)
	s.logger.Info("Cleared favorites")
	return nil
}

// All returns copies of the favorites in insertion order
func (s *Set) All() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Record, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Record.Clone()
	}
	return out
}

// Membership returns an independent snapshot of the favorite ids
func (s *Set) Membership() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make(map[string]struct{}, len(s.index))
	for id := range s.index {
		ids[id] = struct{}{}
	}
	return ids
}

func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Set) Backend() string {
	return s.backend.Name()
}

func (s *Set) Close() error {
	return s.backend.Close()
}

func (s *Set) reindexLocked() {
	clear(s.index)
	for i, e := range s.entries {
		s.index[e.Record.ID()] = i
	}
}
