package cart

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrLoadingCartFailed = errors.New("loading cart failed")
	ErrSavingCartFailed  = errors.New("saving cart failed")
	ErrEmptySessionID    = errors.New("session id must not be empty")
)

// SessionStore persists the full entry list of a session.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (Entries, error)
	Save(ctx context.Context, sessionID string, entries Entries) error
}

// MemorySessionStore keeps carts in process memory.
type MemorySessionStore struct {
	mu    sync.RWMutex
	carts map[string]Entries
}

// NewMemorySessionStore creates an empty MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{carts: make(map[string]Entries)}
}

func (s *MemorySessionStore) Load(_ context.Context, sessionID string) (Entries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.carts[sessionID]), nil
}

func (s *MemorySessionStore) Save(_ context.Context, sessionID string, entries Entries) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(entries) == 0 {
		delete(s.carts, sessionID)
		return nil
	}

	s.carts[sessionID] = clone(entries)

	return nil
}

func clone(entries Entries) Entries {
	out := make(Entries, len(entries))
	copy(out, entries)

	return out
}
