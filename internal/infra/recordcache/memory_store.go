package recordcache

import (
	"context"
	"sync"
	"time"

	"github.com/coldtrace/foodtrace/internal/domain/observation"
)

type historyEntry struct {
	payload   observation.ProductHistory
	expiresAt time.Time
}

// MemoryStore is an in-memory history cache used by default and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]historyEntry
}

// NewMemoryStore constructs a cache backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]historyEntry)}
}

// Get implements observation.HistoryCache.
func (s *MemoryStore) Get(_ context.Context, productID string) (observation.ProductHistory, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[productID]
	s.mu.RUnlock()
	if !ok {
		return observation.ProductHistory{}, false, nil
	}
	if hasExpired(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, productID)
		s.mu.Unlock()
		return observation.ProductHistory{}, false, nil
	}
	return entry.payload, true, nil
}

// Save caches the history with optional TTL.
func (s *MemoryStore) Save(_ context.Context, history observation.ProductHistory, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.entries[history.ProductID] = historyEntry{payload: history, expiresAt: exp}
	return nil
}

// Invalidate drops the cached history for one product.
func (s *MemoryStore) Invalidate(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, productID)
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ observation.HistoryCache = (*MemoryStore)(nil)
