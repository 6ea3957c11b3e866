package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

type EventTypeString = string
type ItemIDString = string
type MemberIDString = string
type HoldIDString = string
type BorrowIDString = string
type GroupIDString = string
type OccurredAtTS = time.Time

// Payload keys that event filters match on.
const (
	PayloadKeyItemID   = "ItemID"
	PayloadKeyMemberID = "MemberID"
)

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision,
// which is what Postgres stores.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// ItemType is the kind of catalog item.
type ItemType string

const (
	ItemTypeBook   ItemType = "Book"
	ItemTypeMedia  ItemType = "Media"
	ItemTypeDevice ItemType = "Device"
)

// ItemTypes lists all valid item types.
func ItemTypes() []ItemType {
	return []ItemType{ItemTypeBook, ItemTypeMedia, ItemTypeDevice}
}

func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeBook, ItemTypeMedia, ItemTypeDevice:
		return true
	default:
		return false
	}
}

// ItemStatus is the circulation status of a catalog item.
type ItemStatus string

const (
	ItemStatusAvailable  ItemStatus = "Available"
	ItemStatusCheckedOut ItemStatus = "CheckedOut"
)

// HoldStatus is the lifecycle state of a hold request.
type HoldStatus string

const (
	HoldStatusActive    HoldStatus = "active"
	HoldStatusFulfilled HoldStatus = "fulfilled"
	HoldStatusCancelled HoldStatus = "cancelled"
)
