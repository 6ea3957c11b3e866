package addcatalogitem

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	commandType = "AddCatalogItem"
)

// Command represents the intent to add an item to the catalog.
type Command struct {
	ItemID     uuid.UUID
	Title      string
	TypeName   core.ItemType
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(itemID uuid.UUID, title string, typeName core.ItemType, occurredAt time.Time) Command {
	return Command{
		ItemID:     itemID,
		Title:      title,
		TypeName:   typeName,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
