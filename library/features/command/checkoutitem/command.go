package checkoutitem

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	commandType = "CheckoutItem"
)

// Command represents the intent of a member to borrow a catalog item.
type Command struct {
	BorrowID   uuid.UUID
	ItemID     uuid.UUID
	MemberID   uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters. OccurredAt is the borrow date.
func BuildCommand(borrowID uuid.UUID, itemID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BorrowID:   borrowID,
		ItemID:     itemID,
		MemberID:   memberID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
