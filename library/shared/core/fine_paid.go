package core

import (
	"time"

	"github.com/google/uuid"
)

// FinePaidEventType is the event type identifier.
const FinePaidEventType = "FinePaid"

// FinePaid reduces the outstanding fine balance of a member.
type FinePaid struct {
	PaymentID   string
	MemberID    MemberIDString
	AmountCents int64
	OccurredAt  OccurredAtTS
}

// BuildFinePaid creates a new FinePaid event.
func BuildFinePaid(paymentID uuid.UUID, memberID uuid.UUID, amountCents int64, occurredAt time.Time) FinePaid {
	return FinePaid{
		PaymentID:   paymentID.String(),
		MemberID:    memberID.String(),
		AmountCents: amountCents,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e FinePaid) EventType() string {
	return FinePaidEventType
}

func (e FinePaid) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e FinePaid) IsErrorEvent() bool {
	return false
}
