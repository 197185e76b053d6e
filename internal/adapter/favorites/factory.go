package favorites

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thushan/holocron/internal/core/constants"
	"github.com/thushan/holocron/internal/core/ports"
	"github.com/thushan/holocron/internal/logger"
)

const sqliteFileName = "favorites.db"

// Config selects and locates the favorites backend
type Config struct {
	Backend   string
	Path      string
	Namespace string
}

// NewBackend builds the backend named by cfg.Backend
func NewBackend(cfg Config) (ports.FavoritesBackend, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", constants.FavoritesBackendBadger:
		return NewBadgerBackend(cfg.Path, cfg.Namespace)
	case constants.FavoritesBackendSQLite:
		path := cfg.Path
		if path != "" && filepath.Ext(path) == "" {
			path = filepath.Join(path, sqliteFileName)
		}
		return NewSQLiteBackend(path, cfg.Namespace)
	case constants.FavoritesBackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown favorites backend %q", cfg.Backend)
	}
}

// New opens the configured backend and restores the set from it
func New(ctx context.Context, cfg Config, log *logger.StyledLogger) (*Set, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}

	set, err := Open(ctx, backend, log)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return set, nil
}
