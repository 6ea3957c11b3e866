package memberbalance

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Balance represents the fine balance of a member in cents.
type Balance struct {
	MemberID         core.MemberIDString `json:"memberId"`
	Registered       bool                `json:"registered"`
	AccruedCents     int64               `json:"accruedCents"`
	PaidCents        int64               `json:"paidCents"`
	OutstandingCents int64               `json:"outstandingCents"`
	SequenceNumber   uint                `json:"-"`
}

// GetSequenceNumber returns the sequence number of the last event included in the projection.
func (r Balance) GetSequenceNumber() uint {
	return r.SequenceNumber
}
