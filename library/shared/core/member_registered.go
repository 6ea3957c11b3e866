package core

import (
	"time"

	"github.com/google/uuid"
)

// MemberRegisteredEventType is the event type identifier.
const MemberRegisteredEventType = "MemberRegistered"

// MemberRegistered represents when a person becomes a library member.
// GroupID selects the lending period, see LendingPolicy.
type MemberRegistered struct {
	MemberID   MemberIDString
	Name       string
	GroupID    GroupIDString
	OccurredAt OccurredAtTS
}

// BuildMemberRegistered creates a new MemberRegistered event.
func BuildMemberRegistered(memberID uuid.UUID, name string, groupID GroupIDString, occurredAt time.Time) MemberRegistered {
	return MemberRegistered{
		MemberID:   memberID.String(),
		Name:       name,
		GroupID:    groupID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e MemberRegistered) EventType() string {
	return MemberRegisteredEventType
}

func (e MemberRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e MemberRegistered) IsErrorEvent() bool {
	return false
}
