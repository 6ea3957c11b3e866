package core

import (
	"time"

	"github.com/google/uuid"
)

// ItemRemovedFromCatalogEventType is the event type identifier.
const ItemRemovedFromCatalogEventType = "ItemRemovedFromCatalog"

// ItemRemovedFromCatalog represents when an item is withdrawn from the catalog.
type ItemRemovedFromCatalog struct {
	ItemID     ItemIDString
	OccurredAt OccurredAtTS
}

// BuildItemRemovedFromCatalog creates a new ItemRemovedFromCatalog event.
func BuildItemRemovedFromCatalog(itemID uuid.UUID, occurredAt time.Time) ItemRemovedFromCatalog {
	return ItemRemovedFromCatalog{
		ItemID:     itemID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e ItemRemovedFromCatalog) EventType() string {
	return ItemRemovedFromCatalogEventType
}

func (e ItemRemovedFromCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ItemRemovedFromCatalog) IsErrorEvent() bool {
	return false
}
