package registermember

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	commandType = "RegisterMember"
)

// Command represents the intent to register a library member.
type Command struct {
	MemberID   uuid.UUID
	Name       string
	GroupID    core.GroupIDString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID uuid.UUID, name string, groupID core.GroupIDString, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		Name:       name,
		GroupID:    groupID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
