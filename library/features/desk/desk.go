package desk

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/features/cart"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/cancelhold"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/checkoutitem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/fulfillhold"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/requesthold"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/returnitem"
	"github.com/AntonStoeckl/library-circulation-go/library/notify"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

const (
	logMsgCartUpdateFailed = "desk: updating cart failed"
	logMsgNotifyFailed     = "desk: publishing hold.next_in_line failed"
	logMsgLookupFailed     = "desk: item lookup for cart entry failed"
)

// Session identifies the member at the desk and the cart of their session.
type Session struct {
	MemberID  uuid.UUID
	SessionID string
}

// Handlers are the command handlers the desk dispatches to, usually observable wrappers.
type Handlers struct {
	Checkout    shell.CommandHandler[checkoutitem.Command]
	Return      shell.CommandHandler[returnitem.Command]
	RequestHold shell.CommandHandler[requesthold.Command]
	CancelHold  shell.CommandHandler[cancelhold.Command]
	FulfillHold shell.CommandHandler[fulfillhold.Command]
}

// Desk runs circulation operations on behalf of a session.
type Desk struct {
	handlers  Handlers
	carts     *cart.Store
	items     ItemLookup
	publisher notify.Publisher
	logger    *slog.Logger
	now       func() time.Time
	newID     func() (uuid.UUID, error)
}

// Option configures a Desk.
type Option func(*Desk)

// WithPublisher sets the publisher for hold.next_in_line notifications.
func WithPublisher(publisher notify.Publisher) Option {
	return func(d *Desk) {
		d.publisher = publisher
	}
}

// WithLogger sets the logger for cart and notification failures.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Desk) {
		d.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Desk) {
		d.now = now
	}
}

// WithIDGenerator replaces uuid.NewV7 for hold and borrow ids.
func WithIDGenerator(newID func() (uuid.UUID, error)) Option {
	return func(d *Desk) {
		d.newID = newID
	}
}

// NewDesk creates a Desk.
func NewDesk(handlers Handlers, carts *cart.Store, items ItemLookup, opts ...Option) *Desk {
	d := &Desk{
		handlers: handlers,
		carts:    carts,
		items:    items,
		logger:   slog.Default(),
		now:      time.Now,
		newID:    uuid.NewV7,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Checkout lends every item to the session's member. Items that were lent leave the cart.
// The returned error is set only for infrastructure failures, business rejections are per item.
// Such an error is a BatchInterruptedError and the returned batch holds the items processed before it.
func (d *Desk) Checkout(ctx context.Context, session Session, itemIDs []uuid.UUID) (BatchResult, error) {
	batch := BatchResult{Items: make([]ItemResult, 0, len(itemIDs))}

	for _, itemID := range itemIDs {
		borrowID, err := d.newID()
		if err != nil {
			return batch, BatchInterruptedError{Processed: batch, ItemID: itemID.String(), Err: err}
		}

		command := checkoutitem.BuildCommand(borrowID, itemID, session.MemberID, d.now())
		result, err := d.handlers.Checkout.Handle(ctx, command)

		itemResult, err := itemResultFrom(itemID.String(), result, err)
		if err != nil {
			return batch, BatchInterruptedError{Processed: batch, ItemID: itemID.String(), Err: err}
		}

		batch.Items = append(batch.Items, itemResult)

		if itemResult.Outcome == OutcomeSuccess {
			d.updateCart(ctx, session, func() error {
				return d.carts.Remove(ctx, session.SessionID, itemID.String())
			})
		}
	}

	return batch, nil
}

// Return takes every item back from the session's member and fulfills the next hold of each
// returned item.
func (d *Desk) Return(ctx context.Context, session Session, itemIDs []uuid.UUID) (BatchResult, error) {
	batch := BatchResult{Items: make([]ItemResult, 0, len(itemIDs))}

	for _, itemID := range itemIDs {
		command := returnitem.BuildCommand(itemID, session.MemberID, d.now())
		result, err := d.handlers.Return.Handle(ctx, command)

		itemResult, err := itemResultFrom(itemID.String(), result, err)
		if err != nil {
			return batch, BatchInterruptedError{Processed: batch, ItemID: itemID.String(), Err: err}
		}

		batch.Items = append(batch.Items, itemResult)
		d.announceFulfilledHolds(ctx, result)
	}

	return batch, nil
}

// RequestHold places a hold for the session's member and puts the item into the cart as OnHold.
func (d *Desk) RequestHold(ctx context.Context, session Session, itemID uuid.UUID) (shell.HandlerResult, error) {
	holdID, err := d.newID()
	if err != nil {
		return shell.HandlerResult{}, err
	}

	result, err := d.handlers.RequestHold.Handle(ctx, requesthold.BuildCommand(holdID, itemID, session.MemberID, d.now()))
	if err != nil {
		return result, err
	}

	if result.HasEvent(core.HoldRequestedEventType) {
		d.putOnHold(ctx, session, itemID.String())
	}

	return result, nil
}

// CancelHold cancels the member's hold, drops the OnHold cart entry and notifies the member who
// moves up if the cancelled hold was holding a reservation.
func (d *Desk) CancelHold(ctx context.Context, session Session, itemID uuid.UUID) (shell.HandlerResult, error) {
	result, err := d.handlers.CancelHold.Handle(ctx, cancelhold.BuildCommand(itemID, session.MemberID, d.now()))
	if err != nil {
		return result, err
	}

	if result.HasEvent(core.HoldCancelledEventType) {
		d.updateCart(ctx, session, func() error {
			return d.carts.RemoveIfCategory(ctx, session.SessionID, itemID.String(), cart.CategoryOnHold)
		})
	}

	d.announceFulfilledHolds(ctx, result)

	return result, nil
}

// FulfillHold reserves an available item for its next-in-line member and notifies them.
func (d *Desk) FulfillHold(ctx context.Context, itemID uuid.UUID) (shell.HandlerResult, error) {
	result, err := d.handlers.FulfillHold.Handle(ctx, fulfillhold.BuildCommand(itemID, d.now()))
	if err != nil {
		return result, err
	}

	d.announceFulfilledHolds(ctx, result)

	return result, nil
}

func (d *Desk) putOnHold(ctx context.Context, session Session, itemID core.ItemIDString) {
	item, err := d.items.Lookup(ctx, itemID)
	if err != nil {
		d.logger.WarnContext(ctx, logMsgLookupFailed, "item_id", itemID, "error", err.Error())
		return
	}

	entry := cart.Entry{
		ItemID:   itemID,
		Title:    item.Title,
		TypeName: item.TypeName,
		Status:   item.Status,
		Category: cart.CategoryOnHold,
	}

	d.updateCart(ctx, session, func() error {
		added, err := d.carts.Add(ctx, session.SessionID, entry)
		if err != nil || added {
			return err
		}

		return d.carts.SetCategory(ctx, session.SessionID, itemID, cart.CategoryOnHold)
	})
}

// updateCart runs change unless the session has no cart. Cart failures do not undo appended events.
func (d *Desk) updateCart(ctx context.Context, session Session, change func() error) {
	if d.carts == nil || session.SessionID == "" {
		return
	}

	if err := change(); err != nil {
		d.logger.ErrorContext(ctx, logMsgCartUpdateFailed, "session_id", session.SessionID, "error", err.Error())
	}
}

// announceFulfilledHolds notifies the member of every hold fulfilled by result, except holds
// collected by a checkout in the same append.
func (d *Desk) announceFulfilledHolds(ctx context.Context, result shell.HandlerResult) {
	if d.publisher == nil || result.HasEvent(core.ItemCheckedOutEventType) {
		return
	}

	for _, event := range result.Events {
		fulfilled, ok := event.(core.HoldFulfilled)
		if !ok {
			continue
		}

		notification := notify.HoldNextInLine(fulfilled.HoldID, fulfilled.ItemID, fulfilled.MemberID, d.now())
		if err := d.publisher.Publish(ctx, notification); err != nil {
			d.logger.WarnContext(ctx, logMsgNotifyFailed, "hold_id", fulfilled.HoldID, "error", err.Error())
		}
	}
}
