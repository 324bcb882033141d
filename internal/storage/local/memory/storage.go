package memory

import (
	"context"
	"sync"

	"github.com/mcoot/eggbreaker/internal/storage/local"
)

// Storage is an in-memory local store, lost when the process exits
type Storage struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates a new in-memory local store
func New() *Storage {
	return &Storage{values: make(map[string]string)}
}

var _ local.Storage = (*Storage)(nil)

func (s *Storage) ReadString(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Storage) WriteString(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
