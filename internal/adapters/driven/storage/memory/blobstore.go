package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
)

// Ensure BlobStore implements the interfaces.
var (
	_ driven.BlobStore     = (*BlobStore)(nil)
	_ driven.KeyValueStore = (*BlobStore)(nil)
)

// BlobStore is an in-memory implementation of driven.BlobStore and
// driven.KeyValueStore.
type BlobStore struct {
	mu     sync.RWMutex
	blobs  map[string]driven.Blob
	values map[string][]byte
}

// NewBlobStore creates a new in-memory blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{
		blobs:  make(map[string]driven.Blob),
		values: make(map[string][]byte),
	}
}

// Put stores a blob under key.
func (s *BlobStore) Put(_ context.Context, key string, blob driven.Blob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob.Data = append([]byte(nil), blob.Data...)
	s.blobs[key] = blob
	return nil
}

// Get retrieves a blob.
func (s *BlobStore) Get(_ context.Context, key string) (driven.Blob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return driven.Blob{}, domain.ErrNotFound
	}
	blob.Data = append([]byte(nil), blob.Data...)
	return blob, nil
}

// Delete removes a blob.
func (s *BlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

// GetValue returns the value stored under key.
func (s *BlobStore) GetValue(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// SetValue stores value under key.
func (s *BlobStore) SetValue(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}
