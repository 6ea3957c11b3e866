package core

import (
	"time"
)

// HoldFulfilledEventType is the event type identifier.
const HoldFulfilledEventType = "HoldFulfilled"

// HoldFulfilled marks the next-in-line hold as fulfilled and reserves the item for its member.
type HoldFulfilled struct {
	HoldID     HoldIDString
	ItemID     ItemIDString
	MemberID   MemberIDString
	OccurredAt OccurredAtTS
}

// BuildHoldFulfilled creates a new HoldFulfilled event for hold.
func BuildHoldFulfilled(hold Hold, occurredAt time.Time) HoldFulfilled {
	return HoldFulfilled{
		HoldID:     hold.HoldID,
		ItemID:     hold.ItemID,
		MemberID:   hold.MemberID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e HoldFulfilled) EventType() string {
	return HoldFulfilledEventType
}

func (e HoldFulfilled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e HoldFulfilled) IsErrorEvent() bool {
	return false
}
