package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      *Data
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Suitable for a single
// instance; the redis store covers anything else. Get and Save copy the
// payload, matching the redis driver's marshal round trip, so parallel
// requests carrying the same cookie never write to one shared map.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Data, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrSessionNotFound
	}
	return entry.data.clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, data *Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memoryEntry{data: data.clone(), expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
