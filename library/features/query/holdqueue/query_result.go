package holdqueue

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// QueuedHold is one active hold.
type QueuedHold struct {
	HoldID     core.HoldIDString   `json:"holdId"`
	MemberID   core.MemberIDString `json:"memberId"`
	CreatedAt  time.Time           `json:"createdAt"`
	Position   int                 `json:"position"`
	NextInLine bool                `json:"nextInLine"`
}

// ItemHoldQueue represents the hold queue of one item.
type ItemHoldQueue struct {
	ItemID         core.ItemIDString   `json:"itemId"`
	InCatalog      bool                `json:"inCatalog"`
	Status         core.ItemStatus     `json:"status"`
	ReservedFor    core.MemberIDString `json:"reservedFor,omitempty"`
	Holds          []QueuedHold        `json:"holds"`
	SequenceNumber uint                `json:"-"`
}

// GetSequenceNumber returns the sequence number of the last event included in the projection.
func (r ItemHoldQueue) GetSequenceNumber() uint {
	return r.SequenceNumber
}
