package memberholds_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/internal/testutil"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/memberholds"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

func Test_QueryHandler_Handle(t *testing.T) {
	// setup
	ctx := context.Background()
	es := testutil.GivenEmptyEventStore()
	memberID := testutil.GivenUniqueID(t)
	otherID := testutil.GivenUniqueID(t)
	dune := testutil.GivenUniqueID(t)
	emma := testutil.GivenUniqueID(t)
	due := testutil.FixedClock.Add(14 * 24 * time.Hour)

	otherHold := core.BuildHoldRequested(testutil.GivenUniqueID(t), dune, otherID, testutil.FixedClock.Add(time.Minute))
	duneHold := core.BuildHoldRequested(testutil.GivenUniqueID(t), dune, memberID, testutil.FixedClock.Add(2*time.Minute))
	emmaHold := core.BuildHoldRequested(testutil.GivenUniqueID(t), emma, memberID, testutil.FixedClock.Add(3*time.Minute))
	emmaBorrow := core.BuildItemCheckedOut(testutil.GivenUniqueID(t), emma, otherID, due, testutil.FixedClock)

	testutil.GivenItemInCatalog(t, es, dune, "Dune", testutil.FixedClock)
	testutil.GivenItemInCatalog(t, es, emma, "Emma", testutil.FixedClock)
	testutil.GivenEventsAppended(t, es,
		core.BuildItemCheckedOut(testutil.GivenUniqueID(t), dune, testutil.GivenUniqueID(t), due, testutil.FixedClock),
		emmaBorrow,
		otherHold,
		duneHold,
		emmaHold,
		core.BuildItemReturned(emmaBorrow.BorrowID, emma, otherID, 0, 0, testutil.FixedClock.Add(time.Hour)),
		core.BuildHoldFulfilled(core.Hold{HoldID: emmaHold.HoldID, ItemID: emmaHold.ItemID, MemberID: emmaHold.MemberID}, testutil.FixedClock.Add(time.Hour)),
	)

	// act
	result, err := memberholds.NewQueryHandler(es).Handle(ctx, memberholds.BuildQuery(memberID))

	// assert
	require.NoError(t, err)
	require.Len(t, result.Holds, 2)

	assert.Equal(t, "Emma", result.Holds[0].Title)
	assert.Equal(t, core.HoldStatusFulfilled, result.Holds[0].Status)
	assert.True(t, result.Holds[0].ReadyForPickup)
	assert.Equal(t, 0, result.Holds[0].Position)

	assert.Equal(t, "Dune", result.Holds[1].Title)
	assert.Equal(t, 2, result.Holds[1].Position)
	assert.False(t, result.Holds[1].NextInLine)
}

func Test_QueryHandler_Handle_WithoutHolds(t *testing.T) {
	result, err := memberholds.NewQueryHandler(testutil.GivenEmptyEventStore()).
		Handle(context.Background(), memberholds.BuildQuery(testutil.GivenUniqueID(t)))

	require.NoError(t, err)
	assert.Empty(t, result.Holds)
}
