package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/korjavin/fridgechef/pkg/logger"
)

// ErrNotFound is returned by Get when the key does not exist
var ErrNotFound = errors.New("key not found")

// Slot names. Every persisted document lives under "<slot>:<scope>".
const (
	SlotProducts  = "products"
	SlotFavorites = "favorites"
	SlotDevice    = "device"
)

// Key builds the storage key for a slot and scope
func Key(slot, scope string) string {
	return fmt.Sprintf("%s:%s", slot, scope)
}

// Store represents a BadgerDB storage instance
type Store struct {
	db *badger.DB
}

// New creates a new BadgerDB storage instance
func New(dataDir string) (*Store, error) {
	absPath, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	opts := badger.DefaultOptions(absPath)
	opts.Logger = nil // Disable Badger's internal logger

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}

	logger.Global.Info("BadgerDB opened at %s", absPath)
	return &Store{db: db}, nil
}

// NewInMemory creates a store that lives only as long as the process
func NewInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory BadgerDB: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the BadgerDB database
func (s *Store) Close() error {
	if s.db != nil && !s.db.IsClosed() {
		return s.db.Close()
	}
	return nil
}

// Set stores a value for a key
func (s *Store) Set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Get retrieves a value for a key. A missing key yields ErrNotFound.
func (s *Store) Get(key string, value interface{}) error {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			data = append([]byte{}, val...)
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return fmt.Errorf("failed to get value: %w", err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

// Delete removes a key from the database
func (s *Store) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// RunGC runs one value log garbage collection pass. Nothing to rewrite is
// not an error.
func (s *Store) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) || errors.Is(err, badger.ErrGCInMemoryMode) {
		return nil
	}
	return err
}
