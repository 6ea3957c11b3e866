package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// FixedClock is the base time of feature tests.
var FixedClock = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// GivenUniqueID returns a time ordered uuid.
func GivenUniqueID(t testing.TB) uuid.UUID {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

// GivenEmptyEventStore returns a fresh in-memory event store.
func GivenEmptyEventStore() *memengine.EventStore {
	return memengine.NewEventStore()
}

// GivenEventsAppended appends events unconditionally, in order.
func GivenEventsAppended(t testing.TB, es shell.EventStore, events ...core.DomainEvent) {
	t.Helper()

	ctx := context.Background()
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()

	for _, event := range events {
		_, maxSeq, err := es.Query(ctx, filter)
		require.NoError(t, err, "error in arranging test data")

		storable, err := shell.StorableEventFrom(event, shell.NewCommandMetadata())
		require.NoError(t, err, "error in arranging test data")

		require.NoError(t, es.Append(ctx, filter, maxSeq, storable), "error in arranging test data")
	}
}

// GivenItemInCatalog appends ItemAddedToCatalog for a book titled title.
func GivenItemInCatalog(t testing.TB, es shell.EventStore, itemID uuid.UUID, title string, at time.Time) {
	t.Helper()
	GivenEventsAppended(t, es, core.BuildItemAddedToCatalog(itemID, title, core.ItemTypeBook, at))
}

// GivenMemberRegistered appends MemberRegistered.
func GivenMemberRegistered(t testing.TB, es shell.EventStore, memberID uuid.UUID, groupID string, at time.Time) {
	t.Helper()
	GivenEventsAppended(t, es, core.BuildMemberRegistered(memberID, "Member "+memberID.String()[:8], groupID, at))
}

// AllEvents returns all stored events as domain events.
func AllEvents(t testing.TB, es shell.QueriesEvents) core.DomainEvents {
	t.Helper()

	storables, _, err := es.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())
	require.NoError(t, err)

	events, err := shell.DomainEventsFrom(storables)
	require.NoError(t, err)

	return events
}

// LastEventType returns the type of the most recently appended event, "" for an empty store.
func LastEventType(t testing.TB, es shell.QueriesEvents) string {
	t.Helper()

	events := AllEvents(t, es)
	if len(events) == 0 {
		return ""
	}

	return events[len(events)-1].EventType()
}

// ConflictingEventStore lets the first Append fail with ErrConcurrencyConflict after an
// interleaving write, so retries can be observed.
type ConflictingEventStore struct {
	*memengine.EventStore
	Interleave func()
	appends    int
}

func (es *ConflictingEventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	storableEvents ...eventstore.StorableEvent,
) error {

	es.appends++
	if es.appends == 1 && es.Interleave != nil {
		es.Interleave()
	}

	return es.EventStore.Append(ctx, filter, expectedMaxSequenceNumber, storableEvents...)
}
