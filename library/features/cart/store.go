package cart

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/notify"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// ErrUnknownCategory is returned for a category other than InCart and OnHold.
var ErrUnknownCategory = errors.New("unknown cart category")

const (
	logMsgNotifyFailed = "cart: publishing cart.changed failed"
	lockStripes        = 64
)

// Store is the cart of every session. Mutations of the same session are serialized.
type Store struct {
	sessions  SessionStore
	publisher notify.Publisher
	logger    *slog.Logger
	now       func() time.Time

	locks [lockStripes]sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithPublisher sets the publisher for cart.changed notifications.
func WithPublisher(publisher notify.Publisher) Option {
	return func(s *Store) {
		s.publisher = publisher
	}
}

// WithLogger sets the logger for failed notifications.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store on sessions.
func NewStore(sessions SessionStore, opts ...Option) *Store {
	s := &Store{
		sessions: sessions,
		logger:   slog.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Entries returns the cart of sessionID.
func (s *Store) Entries(ctx context.Context, sessionID string) (Entries, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	return s.sessions.Load(ctx, sessionID)
}

// IsInCart reports whether itemID is in the cart of sessionID.
func (s *Store) IsInCart(ctx context.Context, sessionID string, itemID core.ItemIDString) (bool, error) {
	entries, err := s.Entries(ctx, sessionID)
	if err != nil {
		return false, err
	}

	return entries.Contains(itemID), nil
}

// Add appends entry. It returns false and changes nothing if the item is in the cart already.
func (s *Store) Add(ctx context.Context, sessionID string, entry Entry) (bool, error) {
	if !entry.Category.IsValid() {
		return false, ErrUnknownCategory
	}

	added := false
	err := s.mutate(ctx, sessionID, func(entries Entries) (Entries, bool) {
		if entries.Contains(entry.ItemID) {
			return entries, false
		}

		added = true

		return append(entries, entry), true
	})

	return added, err
}

// Remove drops itemID from the cart. Removing an item that is not in the cart is a no-op.
func (s *Store) Remove(ctx context.Context, sessionID string, itemID core.ItemIDString) error {
	return s.mutate(ctx, sessionID, func(entries Entries) (Entries, bool) {
		i := entries.indexOf(itemID)
		if i < 0 {
			return entries, false
		}

		return append(entries[:i], entries[i+1:]...), true
	})
}

// RemoveIfCategory drops itemID only while it has category.
func (s *Store) RemoveIfCategory(ctx context.Context, sessionID string, itemID core.ItemIDString, category Category) error {
	return s.mutate(ctx, sessionID, func(entries Entries) (Entries, bool) {
		i := entries.indexOf(itemID)
		if i < 0 || entries[i].Category != category {
			return entries, false
		}

		return append(entries[:i], entries[i+1:]...), true
	})
}

// SetCategory changes the category of itemID, a missing item is a no-op.
func (s *Store) SetCategory(ctx context.Context, sessionID string, itemID core.ItemIDString, category Category) error {
	if !category.IsValid() {
		return ErrUnknownCategory
	}

	return s.mutate(ctx, sessionID, func(entries Entries) (Entries, bool) {
		i := entries.indexOf(itemID)
		if i < 0 || entries[i].Category == category {
			return entries, false
		}

		entries[i].Category = category

		return entries, true
	})
}

// Clear empties the cart. Clearing an empty cart is a no-op.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.mutate(ctx, sessionID, func(entries Entries) (Entries, bool) {
		return Entries{}, len(entries) > 0
	})
}

// mutate runs change on the loaded cart and persists and announces the result if change reports a change.
func (s *Store) mutate(ctx context.Context, sessionID string, change func(Entries) (Entries, bool)) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}

	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	entries, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return err
	}

	entries, changed := change(entries)
	if !changed {
		return nil
	}

	if err = s.sessions.Save(ctx, sessionID, entries); err != nil {
		return err
	}

	s.announce(ctx, sessionID, len(entries))

	return nil
}

func (s *Store) announce(ctx context.Context, sessionID string, entryCount int) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, notify.CartChanged(sessionID, entryCount, s.now())); err != nil {
		s.logger.WarnContext(ctx, logMsgNotifyFailed, "session_id", sessionID, "error", err.Error())
	}
}

// lockFor returns the stripe that serializes sessionID, sessions sharing a stripe wait for each other.
func (s *Store) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))

	return &s.locks[h.Sum32()%lockStripes]
}
