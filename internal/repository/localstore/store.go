// Package localstore implements the repositories on top of a small key/value store.
// Each repository reads its whole collection from one key, mutates it in memory and
// writes the whole collection back: no partial writes, no indexing.
package localstore

import (
	"bytes"
	"context"
	"sync"
)

// Fixed keys of the persisted layout.
const (
	EventsKey    = "events_data"
	SpeakersKey  = "speakers_data"
	ProposalsKey = "proposals_data"
	SessionKey   = "local_auth_user"
)

// Store is a persistent key/value store holding serialized collections.
type Store interface {
	// Get returns the value under key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MapStore is a volatile Store kept in process memory.
type MapStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMapStore() *MapStore {
	return &MapStore{data: make(map[string][]byte)}
}

func (s *MapStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

func (s *MapStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = bytes.Clone(value)
	return nil
}

func (s *MapStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
