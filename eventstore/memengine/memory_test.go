package memengine_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/memengine"
)

func Test_Query_ReturnsOnlyMatchingEvents_InSequenceOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := memengine.NewEventStore()
	fakeClock := time.Unix(0, 0).UTC()

	givenAppended(t, ctx, es, "HoldRequested", `{"ItemID":"i-1","MemberID":"m-1"}`, fakeClock)
	givenAppended(t, ctx, es, "HoldRequested", `{"ItemID":"i-2","MemberID":"m-1"}`, fakeClock)
	givenAppended(t, ctx, es, "HoldCancelled", `{"ItemID":"i-1","MemberID":"m-1"}`, fakeClock)

	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("HoldRequested", "HoldCancelled").
		AndAnyPredicateOf(eventstore.P("ItemID", "i-1")).
		Finalize()

	// act
	events, maxSeq, err := es.Query(ctx, filter)

	// assert
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "HoldRequested", events[0].EventType)
	assert.Equal(t, "HoldCancelled", events[1].EventType)
	assert.Equal(t, uint(3), maxSeq)
}

func Test_Query_AllPredicatesMustMatch(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := memengine.NewEventStore()
	fakeClock := time.Unix(0, 0).UTC()

	givenAppended(t, ctx, es, "ItemCheckedOut", `{"ItemID":"i-1","MemberID":"m-1"}`, fakeClock)
	givenAppended(t, ctx, es, "ItemCheckedOut", `{"ItemID":"i-1","MemberID":"m-2"}`, fakeClock)

	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("ItemCheckedOut").
		AndAllPredicatesOf(eventstore.P("ItemID", "i-1"), eventstore.P("MemberID", "m-2")).
		Finalize()

	// act
	events, maxSeq, err := es.Query(ctx, filter)

	// assert
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, uint(2), maxSeq)
}

func Test_Query_WithEmptyFilter_ReturnsEverything(t *testing.T) {
	ctx := context.Background()
	es := memengine.NewEventStore()
	givenAppended(t, ctx, es, "A", `{}`, time.Unix(0, 0))
	givenAppended(t, ctx, es, "B", `{}`, time.Unix(0, 0))

	events, maxSeq, err := es.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())

	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, uint(2), maxSeq)
}

func Test_Append_When_NoEvent_MatchesTheQuery_BeforeAppend(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := memengine.NewEventStore()
	givenAppended(t, ctx, es, "HoldRequested", `{"ItemID":"other"}`, time.Unix(0, 0))
	filter := itemFilter("i-1")

	_, maxSeq, err := es.Query(ctx, filter)
	require.NoError(t, err)

	// act
	err = es.Append(ctx, filter, maxSeq, storable(t, "HoldRequested", `{"ItemID":"i-1"}`, time.Unix(1, 0)))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, uint(0), maxSeq)
	assert.Equal(t, 2, es.Len())
}

func Test_Append_When_A_ConcurrencyConflict_ShouldHappen(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := memengine.NewEventStore()
	filter := itemFilter("i-1")
	givenAppended(t, ctx, es, "HoldRequested", `{"ItemID":"i-1"}`, time.Unix(0, 0))

	_, maxSeq, err := es.Query(ctx, filter)
	require.NoError(t, err)

	givenAppended(t, ctx, es, "HoldCancelled", `{"ItemID":"i-1"}`, time.Unix(1, 0)) // concurrent append

	// act
	err = es.Append(ctx, filter, maxSeq, storable(t, "HoldRequested", `{"ItemID":"i-1"}`, time.Unix(2, 0)))

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	assert.Equal(t, 2, es.Len())
}

func Test_Append_MultipleEvents_IsAtomic(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := memengine.NewEventStore()
	filter := itemFilter("i-1")

	// act
	err := es.Append(
		ctx,
		filter,
		0,
		storable(t, "ItemReturned", `{"ItemID":"i-1"}`, time.Unix(0, 0)),
		storable(t, "HoldFulfilled", `{"ItemID":"i-1"}`, time.Unix(0, 0)),
	)
	conflictErr := es.Append(ctx, filter, 0, storable(t, "HoldRequested", `{"ItemID":"i-1"}`, time.Unix(0, 0)))

	// assert
	require.NoError(t, err)
	assert.ErrorIs(t, conflictErr, eventstore.ErrConcurrencyConflict)
	assert.Equal(t, 2, es.Len())
}

func Test_Append_WithoutEvents_Fails(t *testing.T) {
	es := memengine.NewEventStore()

	err := es.Append(context.Background(), itemFilter("i-1"), 0)

	assert.ErrorIs(t, err, eventstore.ErrNoEventsToAppend)
}

func Test_Append_Concurrently_OnlyOneWins(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := memengine.NewEventStore()
	filter := itemFilter("i-1")
	const writers = 20
	event := storable(t, "ItemCheckedOut", `{"ItemID":"i-1"}`, time.Unix(0, 0))

	var wg sync.WaitGroup
	var successes atomic.Int32
	var conflicts atomic.Int32

	// act
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := es.Append(ctx, filter, 0, event)
			if err == nil {
				successes.Add(1)
			} else if assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict) {
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	// assert
	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(writers-1), conflicts.Load())
}

func Test_Query_WithCanceledContext_Fails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := memengine.NewEventStore().Query(ctx, itemFilter("i-1"))

	assert.ErrorIs(t, err, eventstore.ErrQueryingEventsFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func itemFilter(itemID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(eventstore.P("ItemID", itemID)).
		Finalize()
}

func storable(t *testing.T, eventType string, payload string, at time.Time) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata(eventType, at, []byte(payload))
	require.NoError(t, err)

	return event
}

func givenAppended(t *testing.T, ctx context.Context, es *memengine.EventStore, eventType string, payload string, at time.Time) {
	t.Helper()

	filter := eventstore.BuildEventFilter().MatchingAnyEvent()
	_, maxSeq, err := es.Query(ctx, filter)
	require.NoError(t, err)
	require.NoError(t, es.Append(ctx, filter, maxSeq, storable(t, eventType, payload, at)))
}
