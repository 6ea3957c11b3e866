package core

import (
	"time"

	"github.com/google/uuid"
)

// ItemReturnedEventType is the event type identifier.
const ItemReturnedEventType = "ItemReturned"

// ItemReturned closes a borrow record. OccurredAt is the return date, FineAccruedCents is
// added to the member's balance.
type ItemReturned struct {
	BorrowID         BorrowIDString
	ItemID           ItemIDString
	MemberID         MemberIDString
	DaysLate         int
	FineAccruedCents int64
	OccurredAt       OccurredAtTS
}

// BuildItemReturned creates a new ItemReturned event.
func BuildItemReturned(
	borrowID BorrowIDString,
	itemID uuid.UUID,
	memberID uuid.UUID,
	daysLate int,
	fineAccruedCents int64,
	occurredAt time.Time,
) ItemReturned {

	return ItemReturned{
		BorrowID:         borrowID,
		ItemID:           itemID.String(),
		MemberID:         memberID.String(),
		DaysLate:         daysLate,
		FineAccruedCents: fineAccruedCents,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

func (e ItemReturned) EventType() string {
	return ItemReturnedEventType
}

func (e ItemReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ItemReturned) IsErrorEvent() bool {
	return false
}
