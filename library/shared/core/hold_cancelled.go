package core

import (
	"time"
)

// HoldCancelledEventType is the event type identifier.
const HoldCancelledEventType = "HoldCancelled"

// HoldCancelled removes a hold from the queue. Cancelling a fulfilled hold releases the reservation.
type HoldCancelled struct {
	HoldID     HoldIDString
	ItemID     ItemIDString
	MemberID   MemberIDString
	OccurredAt OccurredAtTS
}

// BuildHoldCancelled creates a new HoldCancelled event for hold.
func BuildHoldCancelled(hold Hold, occurredAt time.Time) HoldCancelled {
	return HoldCancelled{
		HoldID:     hold.HoldID,
		ItemID:     hold.ItemID,
		MemberID:   hold.MemberID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e HoldCancelled) EventType() string {
	return HoldCancelledEventType
}

func (e HoldCancelled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e HoldCancelled) IsErrorEvent() bool {
	return false
}
