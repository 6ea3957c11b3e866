package cancelhold_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/features/command/cancelhold"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func Test_Decide_CancelsActiveHold(t *testing.T) {
	// arrange
	itemID, memberID := uuid.New(), uuid.New()
	hold := core.BuildHoldRequested(uuid.New(), itemID, memberID, t0.Add(time.Minute))
	history := append(checkedOutItem(itemID), hold)

	// act
	result := cancelhold.Decide(history, cancelhold.BuildCommand(itemID, memberID, t0.Add(time.Hour)))

	// assert
	assert.Equal(t, "success", result.Outcome)
	require.Len(t, result.Events, 1)
	cancelled, ok := result.Events[0].(core.HoldCancelled)
	require.True(t, ok, "Expected HoldCancelled event")
	assert.Equal(t, hold.HoldID, cancelled.HoldID)
}

func Test_Decide_CancellingReservingHold_FulfillsNextInLine(t *testing.T) {
	// arrange
	itemID, memberID, nextID := uuid.New(), uuid.New(), uuid.New()
	history := checkedOutItem(itemID)
	borrow := history[1].(core.ItemCheckedOut)

	own := core.BuildHoldRequested(uuid.New(), itemID, memberID, t0.Add(time.Minute))
	next := core.BuildHoldRequested(uuid.New(), itemID, nextID, t0.Add(2*time.Minute))
	last := core.BuildHoldRequested(uuid.New(), itemID, uuid.New(), t0.Add(3*time.Minute))
	history = append(history,
		own, next, last,
		core.BuildItemReturned(borrow.BorrowID, itemID, uuid.MustParse(borrow.MemberID), 0, 0, t0.Add(time.Hour)),
		core.BuildHoldFulfilled(holdOf(own), t0.Add(time.Hour)),
	)

	// act
	result := cancelhold.Decide(history, cancelhold.BuildCommand(itemID, memberID, t0.Add(2*time.Hour)))

	// assert
	assert.Equal(t, "success", result.Outcome)
	require.Len(t, result.Events, 2)
	assert.Equal(t, core.HoldCancelledEventType, result.Events[0].EventType())
	fulfilled, ok := result.Events[1].(core.HoldFulfilled)
	require.True(t, ok, "Expected HoldFulfilled event")
	assert.Equal(t, next.HoldID, fulfilled.HoldID)
	assert.Equal(t, nextID.String(), fulfilled.MemberID)
}

func Test_Decide_Idempotent_WhenHoldIsCancelled(t *testing.T) {
	itemID, memberID := uuid.New(), uuid.New()
	hold := core.BuildHoldRequested(uuid.New(), itemID, memberID, t0.Add(time.Minute))
	history := append(checkedOutItem(itemID), hold, core.BuildHoldCancelled(holdOf(hold), t0.Add(2*time.Minute)))

	result := cancelhold.Decide(history, cancelhold.BuildCommand(itemID, memberID, t0.Add(time.Hour)))

	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error_WhenNoHold(t *testing.T) {
	itemID, memberID := uuid.New(), uuid.New()

	result := cancelhold.Decide(checkedOutItem(itemID), cancelhold.BuildCommand(itemID, memberID, t0.Add(time.Hour)))

	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
	require.Len(t, result.Events, 1)
	assert.Equal(t, core.CancelingHoldFailedEventType, result.Events[0].EventType())
}

func Test_Decide_Error_WhenHoldWasCollected(t *testing.T) {
	// arrange
	itemID, memberID := uuid.New(), uuid.New()
	history := checkedOutItem(itemID)
	borrow := history[1].(core.ItemCheckedOut)
	own := core.BuildHoldRequested(uuid.New(), itemID, memberID, t0.Add(time.Minute))
	history = append(history,
		own,
		core.BuildItemReturned(borrow.BorrowID, itemID, uuid.MustParse(borrow.MemberID), 0, 0, t0.Add(time.Hour)),
		core.BuildHoldFulfilled(holdOf(own), t0.Add(time.Hour)),
		core.BuildItemCheckedOut(uuid.New(), itemID, memberID, t0.Add(15*24*time.Hour), t0.Add(2*time.Hour)),
	)

	// act
	result := cancelhold.Decide(history, cancelhold.BuildCommand(itemID, memberID, t0.Add(3*time.Hour)))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrConflict)
	failed, ok := result.Events[0].(core.CommandFailed)
	require.True(t, ok, "Expected CommandFailed event")
	assert.Equal(t, "hold already collected", failed.FailureInfo)
}

func checkedOutItem(itemID uuid.UUID) core.DomainEvents {
	return core.DomainEvents{
		core.BuildItemAddedToCatalog(itemID, "Dune", core.ItemTypeBook, t0),
		core.BuildItemCheckedOut(uuid.New(), itemID, uuid.New(), t0.Add(14*24*time.Hour), t0),
	}
}

func holdOf(e core.HoldRequested) core.Hold {
	return core.Hold{HoldID: e.HoldID, ItemID: e.ItemID, MemberID: e.MemberID, CreatedAt: e.OccurredAt}
}
