package runs

import (
	"context"
	"sync"
)

const defaultMemoryCapacity = 500

// MemoryStore keeps the most recent runs in a ring and is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	items    []Run
	next     int
	full     bool
}

// NewMemoryStore constructs a MemoryStore. capacity <= 0 uses the default.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryStore{
		capacity: capacity,
		items:    make([]Run, capacity),
	}
}

// Record stores the run, evicting the oldest when full.
func (s *MemoryStore) Record(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[s.next] = run
	s.next = (s.next + 1) % s.capacity
	if s.next == 0 {
		s.full = true
	}
	return nil
}

// List returns up to limit runs, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, err := ClampLimit(limit)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.next
	if s.full {
		size = s.capacity
	}
	if limit > size {
		limit = size
	}
	out := make([]Run, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (s.next - i + s.capacity) % s.capacity
		out = append(out, s.items[idx])
	}
	return out, nil
}
