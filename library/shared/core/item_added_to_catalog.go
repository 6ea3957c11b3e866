package core

import (
	"time"

	"github.com/google/uuid"
)

// ItemAddedToCatalogEventType is the event type identifier.
const ItemAddedToCatalogEventType = "ItemAddedToCatalog"

// ItemAddedToCatalog represents when a book, media or device item is added to the catalog.
type ItemAddedToCatalog struct {
	ItemID     ItemIDString
	Title      string
	TypeName   ItemType
	OccurredAt OccurredAtTS
}

// BuildItemAddedToCatalog creates a new ItemAddedToCatalog event.
func BuildItemAddedToCatalog(itemID uuid.UUID, title string, typeName ItemType, occurredAt time.Time) ItemAddedToCatalog {
	return ItemAddedToCatalog{
		ItemID:     itemID.String(),
		Title:      title,
		TypeName:   typeName,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e ItemAddedToCatalog) EventType() string {
	return ItemAddedToCatalogEventType
}

func (e ItemAddedToCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ItemAddedToCatalog) IsErrorEvent() bool {
	return false
}
