package sessionRepo

import (
	"context"
	"sync"
	"time"

	"signup/models"
)

type memoryEntry struct {
	session   *models.Session
	expiresAt time.Time
}

// MemorySessionStore implements SessionStore on an in-process map. Expiry is
// checked lazily on Get and enforced by a background sweep goroutine that
// evicts idle entries on a fixed interval. Sessions are deep-copied on both
// Put and Get so handlers never share mutable state with the store.
type MemorySessionStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMemorySessionStore creates an in-memory SessionStore and starts its
// sweep goroutine. Close stops the sweeper.
func NewMemorySessionStore(ttl, sweepInterval time.Duration) *MemorySessionStore {
	ctx, cancel := context.WithCancel(context.Background())
	s := &MemorySessionStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go s.sweepLoop(ctx, sweepInterval)
	return s
}

func (s *MemorySessionStore) Put(ctx context.Context, key string, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{
		session:   session.Clone(),
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, key string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.session.Clone(), nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemorySessionStore) Close() error {
	s.cancel()
	<-s.done
	return nil
}

func (s *MemorySessionStore) sweepLoop(ctx context.Context, interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.evictExpired(now)
		}
	}
}

func (s *MemorySessionStore) evictExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
