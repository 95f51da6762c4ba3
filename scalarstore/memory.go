package scalarstore

import (
	"context"
	"sync"

	"github.com/openwallet/market-sync/interfaces"
)

// MemoryStore implements interfaces.PersistentScalarStore in process
// memory. Used when the redis store is disabled and in tests; records do
// not survive restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]interfaces.ScalarRecord
}

// NewMemoryStore creates an empty in-memory scalar store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]interfaces.ScalarRecord),
	}
}

// Get returns the record for the key, or false if none is stored
func (s *MemoryStore) Get(ctx context.Context, key string) (interfaces.ScalarRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key]
	return record, ok, nil
}

// Set stores the record for the key, replacing any previous one
func (s *MemoryStore) Set(ctx context.Context, key string, record interfaces.ScalarRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = record
	return nil
}
