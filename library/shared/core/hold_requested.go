package core

import (
	"time"

	"github.com/google/uuid"
)

// HoldRequestedEventType is the event type identifier.
const HoldRequestedEventType = "HoldRequested"

// HoldRequested puts a member into the hold queue of a checked out item.
// OccurredAt is the createdAt the queue is ordered by.
type HoldRequested struct {
	HoldID     HoldIDString
	ItemID     ItemIDString
	MemberID   MemberIDString
	OccurredAt OccurredAtTS
}

// BuildHoldRequested creates a new HoldRequested event.
func BuildHoldRequested(holdID uuid.UUID, itemID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) HoldRequested {
	return HoldRequested{
		HoldID:     holdID.String(),
		ItemID:     itemID.String(),
		MemberID:   memberID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e HoldRequested) EventType() string {
	return HoldRequestedEventType
}

func (e HoldRequested) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e HoldRequested) IsErrorEvent() bool {
	return false
}
