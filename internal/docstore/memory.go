package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pfell/starboard/internal/model"
)

// MemoryStore is an in-memory Store for tests. It round-trips documents
// through JSON so callers get copies, never shared pointers, matching the
// isolation of the real store. It counts Set calls so tests can assert that
// no-op operations skip the write entirely.
type MemoryStore struct {
	mu     sync.Mutex
	docs   map[string][]byte
	writes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*model.FamilyState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.docs[key]
	if !ok {
		return nil, nil
	}
	var st model.FamilyState
	if err := json.Unmarshal(body, &st); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &st, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, st *model.FamilyState) error {
	body, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = body
	s.writes++
	return nil
}

// Writes returns how many times Set has been called.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
