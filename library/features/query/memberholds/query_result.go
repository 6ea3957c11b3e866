package memberholds

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// MemberHold is one hold of the member. Position is 0 unless the hold is active.
type MemberHold struct {
	HoldID     core.HoldIDString `json:"holdId"`
	ItemID     core.ItemIDString `json:"itemId"`
	Title      string            `json:"title"`
	CreatedAt  time.Time         `json:"createdAt"`
	Status     core.HoldStatus   `json:"status"`
	Position   int               `json:"position"`
	NextInLine bool              `json:"nextInLine"`
	// ReadyForPickup is set while a fulfilled hold reserves the item for the member.
	ReadyForPickup bool `json:"readyForPickup"`
}

// MemberHolds represents all holds of a member, most recent first.
type MemberHolds struct {
	MemberID       core.MemberIDString `json:"memberId"`
	Holds          []MemberHold        `json:"holds"`
	SequenceNumber uint                `json:"-"`
}

// GetSequenceNumber returns the sequence number of the last event included in the projection.
func (r MemberHolds) GetSequenceNumber() uint {
	return r.SequenceNumber
}
