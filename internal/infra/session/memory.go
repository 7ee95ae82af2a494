package session

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore хранит снимки в памяти процесса, истекшие записи удаляются при чтении
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*domain.Selection, error) {
	s.mu.Lock()
	entry, ok := s.entries[sessionID]
	if ok && !s.now().Before(entry.expiresAt) {
		delete(s.entries, sessionID)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	sel, err := domain.RestoreSelection(entry.data)
	if err != nil {
		return nil, ErrCorruptedSession
	}
	return sel, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, sel *domain.Selection) error {
	data, err := sel.Snapshot()
	if err != nil {
		return ErrStore
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
