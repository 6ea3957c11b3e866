package cancelhold_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation-go/internal/testutil"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/cancelhold"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// countingEventStore counts the Append calls that reach the store.
type countingEventStore struct {
	*memengine.EventStore
	appends int
}

func (es *countingEventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	storableEvents ...eventstore.StorableEvent,
) error {

	es.appends++

	return es.EventStore.Append(ctx, filter, expectedMaxSequenceNumber, storableEvents...)
}

func Test_CommandHandler_Handle_CancellingReservingHold_FulfillsTheNextInOneAppend(t *testing.T) {
	// setup
	ctx := context.Background()
	itemID, memberID, nextID := uuid.New(), uuid.New(), uuid.New()
	history := checkedOutItem(itemID)
	borrow := history[1].(core.ItemCheckedOut)
	own := core.BuildHoldRequested(uuid.New(), itemID, memberID, t0.Add(time.Minute))
	next := core.BuildHoldRequested(uuid.New(), itemID, nextID, t0.Add(2*time.Minute))

	es := &countingEventStore{EventStore: testutil.GivenEmptyEventStore()}
	testutil.GivenEventsAppended(t, es.EventStore, append(history,
		own,
		next,
		core.BuildItemReturned(borrow.BorrowID, itemID, uuid.MustParse(borrow.MemberID), 0, 0, t0.Add(time.Hour)),
		core.BuildHoldFulfilled(holdOf(own), t0.Add(time.Hour)),
	)...)
	storedBefore := es.Len()

	handler := cancelhold.NewCommandHandler(es)

	// act
	result, err := handler.Handle(ctx, cancelhold.BuildCommand(itemID, memberID, t0.Add(2*time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, es.appends)
	assert.Equal(t, storedBefore+2, es.Len())
	assert.True(t, result.HasEvent(core.HoldCancelledEventType))
	assert.True(t, result.HasEvent(core.HoldFulfilledEventType))

	events := testutil.AllEvents(t, es)
	fulfilled, ok := events[len(events)-1].(core.HoldFulfilled)
	require.True(t, ok, "Expected HoldFulfilled event")
	assert.Equal(t, next.HoldID, fulfilled.HoldID)
	assert.Equal(t, core.HoldCancelledEventType, events[len(events)-2].EventType())
}

func Test_CommandHandler_Handle_WithoutHold_IsNotFound(t *testing.T) {
	// setup
	ctx := context.Background()
	itemID := uuid.New()
	es := testutil.GivenEmptyEventStore()
	testutil.GivenEventsAppended(t, es, checkedOutItem(itemID)...)

	// act
	result, err := cancelhold.NewCommandHandler(es).Handle(ctx, cancelhold.BuildCommand(itemID, uuid.New(), t0.Add(time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.True(t, result.HasEvent(core.CancelingHoldFailedEventType))
	assert.Equal(t, core.CancelingHoldFailedEventType, testutil.LastEventType(t, es))
}
