package core

import (
	"time"

	"github.com/google/uuid"
)

// ItemCheckedOutEventType is the event type identifier.
const ItemCheckedOutEventType = "ItemCheckedOut"

// ItemCheckedOut opens a borrow record: the item is lent to the member until DueDate.
type ItemCheckedOut struct {
	BorrowID   BorrowIDString
	ItemID     ItemIDString
	MemberID   MemberIDString
	DueDate    time.Time
	OccurredAt OccurredAtTS
}

// BuildItemCheckedOut creates a new ItemCheckedOut event, its OccurredAt is the borrow date.
func BuildItemCheckedOut(
	borrowID uuid.UUID,
	itemID uuid.UUID,
	memberID uuid.UUID,
	dueDate time.Time,
	occurredAt time.Time,
) ItemCheckedOut {

	return ItemCheckedOut{
		BorrowID:   borrowID.String(),
		ItemID:     itemID.String(),
		MemberID:   memberID.String(),
		DueDate:    ToOccurredAt(dueDate),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e ItemCheckedOut) EventType() string {
	return ItemCheckedOutEventType
}

func (e ItemCheckedOut) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ItemCheckedOut) IsErrorEvent() bool {
	return false
}
