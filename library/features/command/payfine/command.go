package payfine

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	commandType = "PayFine"
)

// Command represents the intent of a member to pay (part of) their fine balance.
// PaymentID makes a retried payment idempotent.
type Command struct {
	PaymentID   uuid.UUID
	MemberID    uuid.UUID
	AmountCents int64
	OccurredAt  core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(paymentID uuid.UUID, memberID uuid.UUID, amountCents int64, occurredAt time.Time) Command {
	return Command{
		PaymentID:   paymentID,
		MemberID:    memberID,
		AmountCents: amountCents,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
