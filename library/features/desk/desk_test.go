package desk_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation-go/internal/testutil"
	"github.com/AntonStoeckl/library-circulation-go/library/features/cart"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/cancelhold"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/checkoutitem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/fulfillhold"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/requesthold"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/returnitem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/desk"
	"github.com/AntonStoeckl/library-circulation-go/library/notify"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

var errStoreDown = errors.New("event store down")

// failingCheckout fails with errStoreDown for one item and delegates every other item.
type failingCheckout struct {
	next   shell.CommandHandler[checkoutitem.Command]
	itemID uuid.UUID
}

func (h failingCheckout) Handle(ctx context.Context, command checkoutitem.Command) (shell.HandlerResult, error) {
	if command.ItemID == h.itemID {
		return shell.HandlerResult{}, errStoreDown
	}

	return h.next.Handle(ctx, command)
}

type fixture struct {
	es       *memengine.EventStore
	carts    *cart.Store
	recorder *notify.Recorder
	desk     *desk.Desk
	now      time.Time
}

func givenDesk(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		es:       testutil.GivenEmptyEventStore(),
		recorder: notify.NewRecorder(nil),
		now:      testutil.FixedClock,
	}
	f.carts = cart.NewStore(cart.NewMemorySessionStore())

	handlers := desk.Handlers{
		Checkout:    checkoutitem.NewCommandHandler(f.es),
		Return:      returnitem.NewCommandHandler(f.es),
		RequestHold: requesthold.NewCommandHandler(f.es),
		CancelHold:  cancelhold.NewCommandHandler(f.es),
		FulfillHold: fulfillhold.NewCommandHandler(f.es),
	}

	f.desk = desk.NewDesk(
		handlers,
		f.carts,
		desk.NewEventStoreItemLookup(f.es),
		desk.WithPublisher(f.recorder),
		desk.WithClock(func() time.Time { return f.now }),
	)

	return f
}

func (f *fixture) givenMember(t *testing.T) desk.Session {
	t.Helper()

	memberID := testutil.GivenUniqueID(t)
	testutil.GivenMemberRegistered(t, f.es, memberID, "", testutil.FixedClock)

	return desk.Session{MemberID: memberID, SessionID: "session-" + memberID.String()}
}

func (f *fixture) givenItem(t *testing.T, title string) uuid.UUID {
	t.Helper()

	itemID := testutil.GivenUniqueID(t)
	testutil.GivenItemInCatalog(t, f.es, itemID, title, testutil.FixedClock)

	return itemID
}

func Test_Checkout_RemovesTheItemFromTheCart(t *testing.T) {
	// setup
	ctx := context.Background()
	f := givenDesk(t)
	session := f.givenMember(t)
	itemID := f.givenItem(t, "Dune")

	_, err := f.carts.Add(ctx, session.SessionID, cart.Entry{
		ItemID:   itemID.String(),
		Title:    "Dune",
		TypeName: core.ItemTypeBook,
		Status:   core.ItemStatusAvailable,
		Category: cart.CategoryInCart,
	})
	require.NoError(t, err)

	// act
	batch, err := f.desk.Checkout(ctx, session, []uuid.UUID{itemID})

	// assert
	require.NoError(t, err)
	require.Len(t, batch.Items, 1)
	assert.Equal(t, desk.OutcomeSuccess, batch.Items[0].Outcome)
	require.NotNil(t, batch.Items[0].DueDate)
	assert.Equal(t, testutil.FixedClock.Add(14*24*time.Hour), *batch.Items[0].DueDate)

	entries, err := f.carts.Entries(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, core.ItemCheckedOutEventType, testutil.LastEventType(t, f.es))
}

func Test_Checkout_ReportsEveryItemIndependently(t *testing.T) {
	// setup
	ctx := context.Background()
	f := givenDesk(t)
	session := f.givenMember(t)
	itemID := f.givenItem(t, "Dune")
	unknownItemID := testutil.GivenUniqueID(t)

	// act
	batch, err := f.desk.Checkout(ctx, session, []uuid.UUID{itemID, unknownItemID})
	require.NoError(t, err)

	again, err := f.desk.Checkout(ctx, session, []uuid.UUID{itemID})
	require.NoError(t, err)

	// assert
	require.Len(t, batch.Items, 2)
	assert.False(t, batch.AllRejected())
	assert.Equal(t, []string{itemID.String()}, batch.SucceededItemIDs())
	assert.Equal(t, desk.OutcomeRejected, batch.Items[1].Outcome)
	assert.ErrorIs(t, batch.Items[1].Kind, core.ErrNotFound)

	assert.True(t, again.AllRejected())
	assert.ErrorIs(t, again.Items[0].Kind, core.ErrConflict)
	assert.Equal(t, "item is checked out", again.Items[0].Reason)
}

func Test_Return_ChargesTheFine_And_NotifiesTheNextInLine(t *testing.T) {
	// setup
	ctx := context.Background()
	f := givenDesk(t)
	borrower := f.givenMember(t)
	waiting := f.givenMember(t)
	itemID := f.givenItem(t, "Dune")

	_, err := f.desk.Checkout(ctx, borrower, []uuid.UUID{itemID})
	require.NoError(t, err)

	f.now = f.now.Add(time.Hour)
	_, err = f.desk.RequestHold(ctx, waiting, itemID)
	require.NoError(t, err)

	waitingCart, err := f.carts.Entries(ctx, waiting.SessionID)
	require.NoError(t, err)
	require.Len(t, waitingCart, 1)
	assert.Equal(t, cart.CategoryOnHold, waitingCart[0].Category)
	assert.Equal(t, "Dune", waitingCart[0].Title)
	assert.Equal(t, core.ItemStatusCheckedOut, waitingCart[0].Status)

	// act
	f.now = testutil.FixedClock.Add(16 * 24 * time.Hour)
	batch, err := f.desk.Return(ctx, borrower, []uuid.UUID{itemID})

	// assert
	require.NoError(t, err)
	require.Len(t, batch.Items, 1)
	assert.Equal(t, 2, batch.Items[0].DaysLate)
	assert.Equal(t, int64(50), batch.Items[0].FineAccruedCents)

	notifications := f.recorder.Notifications(notify.TopicHoldNextInLine)
	require.Len(t, notifications, 1)
	assert.Equal(t, waiting.MemberID.String(), notifications[0].Payload["memberId"])
	assert.Equal(t, itemID.String(), notifications[0].Payload["itemId"])
}

func Test_CancelHold_RemovesTheOnHoldEntry(t *testing.T) {
	// setup
	ctx := context.Background()
	f := givenDesk(t)
	borrower := f.givenMember(t)
	waiting := f.givenMember(t)
	itemID := f.givenItem(t, "Dune")

	_, err := f.desk.Checkout(ctx, borrower, []uuid.UUID{itemID})
	require.NoError(t, err)
	_, err = f.desk.RequestHold(ctx, waiting, itemID)
	require.NoError(t, err)

	// act
	result, err := f.desk.CancelHold(ctx, waiting, itemID)

	// assert
	require.NoError(t, err)
	assert.True(t, result.HasEvent(core.HoldCancelledEventType))

	inCart, err := f.carts.IsInCart(ctx, waiting.SessionID, itemID.String())
	require.NoError(t, err)
	assert.False(t, inCart)
	assert.Empty(t, f.recorder.Notifications(notify.TopicHoldNextInLine))
}

func Test_RequestHold_OnAnAvailableItem_IsRejected(t *testing.T) {
	// setup
	ctx := context.Background()
	f := givenDesk(t)
	session := f.givenMember(t)
	itemID := f.givenItem(t, "Dune")

	// act
	_, err := f.desk.RequestHold(ctx, session, itemID)

	// assert
	assert.ErrorIs(t, err, core.ErrConflict)

	inCart, err := f.carts.IsInCart(ctx, session.SessionID, itemID.String())
	require.NoError(t, err)
	assert.False(t, inCart)
}

func Test_FulfillHold_WithoutQueue_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := givenDesk(t)
	itemID := f.givenItem(t, "Dune")

	result, err := f.desk.FulfillHold(ctx, itemID)

	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Empty(t, f.recorder.Notifications(""))
}

func Test_Checkout_InfrastructureError_ReportsTheItemsProcessedBefore(t *testing.T) {
	// setup
	ctx := context.Background()
	f := givenDesk(t)
	session := f.givenMember(t)
	dune := f.givenItem(t, "Dune")
	emma := f.givenItem(t, "Emma")
	camera := f.givenItem(t, "Camera")

	interrupted := desk.NewDesk(
		desk.Handlers{Checkout: failingCheckout{next: checkoutitem.NewCommandHandler(f.es), itemID: emma}},
		f.carts,
		desk.NewEventStoreItemLookup(f.es),
		desk.WithClock(func() time.Time { return f.now }),
	)

	// act
	batch, err := interrupted.Checkout(ctx, session, []uuid.UUID{dune, emma, camera})

	// assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)

	var batchErr desk.BatchInterruptedError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, emma.String(), batchErr.ItemID)
	assert.Equal(t, []string{dune.String()}, batchErr.Processed.SucceededItemIDs())
	assert.Equal(t, batchErr.Processed, batch)
	assert.Equal(t, core.ItemCheckedOutEventType, testutil.LastEventType(t, f.es))
}
