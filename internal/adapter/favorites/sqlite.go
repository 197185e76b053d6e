package favorites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/thushan/holocron/internal/core/constants"
	"github.com/thushan/holocron/internal/core/ports"
)

const memoryDSN = ":memory:"

// SQLiteBackend keeps favorites in a single sqlite table shared by
// namespaces
type SQLiteBackend struct {
	db        *sql.DB
	namespace string
}

var _ ports.FavoritesBackend = (*SQLiteBackend)(nil)

func NewSQLiteBackend(path, namespace string) (*SQLiteBackend, error) {
	if namespace == "" {
		namespace = constants.DefaultFavoritesNamespace
	}
	if path == "" {
		path = memoryDSN
	}
	if path != memoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// every :memory: connection is its own database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS favorites (
		namespace TEXT NOT NULL,
		id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		record BLOB NOT NULL,
		PRIMARY KEY (namespace, id)
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create favorites table: %w", err)
	}

	return &SQLiteBackend{db: db, namespace: namespace}, nil
}

func (s *SQLiteBackend) Name() string {
	return constants.FavoritesBackendSQLite
}

func (s *SQLiteBackend) Load(ctx context.Context) ([]ports.FavoriteEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT seq, record FROM favorites WHERE namespace = ? ORDER BY seq`, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("select favorites: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]ports.FavoriteEntry, 0)
	for rows.Next() {
		var seq int64
		var payload []byte
		if err := rows.Scan(&seq, &payload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		entry, err := decodeEntry(payload)
		if err != nil {
			return nil, fmt.Errorf("decode favorite: %w", err)
		}
		entry.Seq = uint64(seq)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteBackend) Put(ctx context.Context, entry ports.FavoriteEntry) error {
	payload, err := encodeEntry(entry)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO favorites (namespace, id, seq, record) VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, id) DO UPDATE SET seq = excluded.seq, record = excluded.record`,
		s.namespace, entry.Record.ID(), int64(entry.Seq), payload)
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE namespace = ? AND id = ?`, s.namespace, id); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE namespace = ?`, s.namespace); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
