// Package kv wraps an embedded ordered key-value store (BadgerDB) behind
// the small surface the history layer needs: point reads, single writes,
// and atomic write batches.
package kv

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("kv: key not found")

// Config holds configuration for a store.
type Config struct {
	// Path is the directory for the store's files. Created if missing.
	Path string

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger receives the store's internal log output. If nil, internal
	// logging is disabled.
	Logger *slog.Logger
}

// Store is an open key-value store handle.
type Store struct {
	db *badger.DB
}

// slogAdapter adapts slog.Logger to badger's Logger interface.
type slogAdapter struct {
	logger *slog.Logger
}

func (l slogAdapter) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l slogAdapter) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l slogAdapter) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l slogAdapter) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Open opens (or creates) the store at the configured path.
func Open(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path).
		WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(slogAdapter{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the store handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for key, or ErrNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, nil
}

// Put writes a single key.
func (s *Store) Put(key string, value []byte) error {
	batch := &Batch{}
	batch.Put(key, value)
	return s.Write(batch)
}

// Delete removes a single key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	batch := &Batch{}
	batch.Delete(key)
	return s.Write(batch)
}

type batchOp struct {
	key    string
	value  []byte
	delete bool
}

// Batch accumulates writes and deletes to be committed atomically.
type Batch struct {
	ops []batchOp
}

// Put queues a write.
func (b *Batch) Put(key string, value []byte) {
	b.ops = append(b.ops, batchOp{key: key, value: value})
}

// Delete queues a removal.
func (b *Batch) Delete(key string) {
	b.ops = append(b.ops, batchOp{key: key, delete: true})
}

// Len returns the number of queued operations.
func (b *Batch) Len() int {
	return len(b.ops)
}

// Write commits the batch in a single transaction. Partial observers never
// see half-applied state.
func (s *Store) Write(b *Batch) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, op := range b.ops {
			if op.delete {
				if err := txn.Delete([]byte(op.key)); err != nil {
					return err
				}
				continue
			}
			if err := txn.Set([]byte(op.key), op.value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}
