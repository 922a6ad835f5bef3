package notify

import (
	"context"
	"sync"
	"time"
)

// MemoryWatermarkStore é a implementação em memória usada nos testes.
type MemoryWatermarkStore struct {
	mu    sync.Mutex
	marks map[string]time.Time
}

func NewMemoryWatermarkStore() *MemoryWatermarkStore {
	return &MemoryWatermarkStore{marks: make(map[string]time.Time)}
}

func (s *MemoryWatermarkStore) Get(_ context.Context, kind, userID string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marks[watermarkKey(kind, userID)], nil
}

func (s *MemoryWatermarkStore) Set(_ context.Context, kind, userID string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marks[watermarkKey(kind, userID)] = t
	return nil
}
