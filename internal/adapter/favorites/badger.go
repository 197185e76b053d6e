package favorites

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/thushan/holocron/internal/core/constants"
	"github.com/thushan/holocron/internal/core/ports"
)

// BadgerBackend keeps favorites in a badger key/value store, one key per
// favorite under "<namespace>/"
type BadgerBackend struct {
	db        *badger.DB
	namespace string
	prefix    []byte
}

var _ ports.FavoritesBackend = (*BadgerBackend)(nil)

// NewBadgerBackend opens (or creates) the store in dir. An empty dir keeps
// everything in memory.
func NewBadgerBackend(dir, namespace string) (*BadgerBackend, error) {
	if namespace == "" {
		namespace = constants.DefaultFavoritesNamespace
	}

	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	// badger logs to stderr by default which would tear the TUI
	opts = opts.WithLogger(nil).WithSyncWrites(true)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", dir, err)
	}

	return &BadgerBackend{
		db:        db,
		namespace: namespace,
		prefix:    []byte(namespace + "/"),
	}, nil
}

func (b *BadgerBackend) Name() string {
	return constants.FavoritesBackendBadger
}

func (b *BadgerBackend) key(id string) []byte {
	return append(append([]byte{}, b.prefix...), id...)
}

func (b *BadgerBackend) Load(ctx context.Context) ([]ports.FavoriteEntry, error) {
	entries := make([]ports.FavoriteEntry, 0)

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = b.prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			err := item.Value(func(val []byte) error {
				entry, err := decodeEntry(val)
				if err != nil {
					return fmt.Errorf("decode %s: %w", item.Key(), err)
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (b *BadgerBackend) Put(ctx context.Context, entry ports.FavoriteEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeEntry(entry)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key(entry.Record.ID()), data)
	})
}

func (b *BadgerBackend) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(b.key(id))
	})
}

func (b *BadgerBackend) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.DropPrefix(b.prefix)
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}
