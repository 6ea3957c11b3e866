package cancelhold

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	commandType = "CancelHold"
)

// Command represents the intent of a member to cancel their hold on a catalog item.
type Command struct {
	ItemID     uuid.UUID
	MemberID   uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(itemID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		ItemID:     itemID,
		MemberID:   memberID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
