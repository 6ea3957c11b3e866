package catalogitems

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// CatalogItem is one catalog entry with its live status.
type CatalogItem struct {
	ItemID      core.ItemIDString   `json:"itemId"`
	Title       string              `json:"title"`
	TypeName    core.ItemType       `json:"typeName"`
	Status      core.ItemStatus     `json:"status"`
	ReservedFor core.MemberIDString `json:"reservedFor,omitempty"`
	ActiveHolds int                 `json:"activeHolds"`
}

// CatalogItems represents one page of the catalog.
type CatalogItems struct {
	Items          []CatalogItem `json:"items"`
	Total          int           `json:"total"`
	Page           int           `json:"page"`
	PageSize       int           `json:"pageSize"`
	SequenceNumber uint          `json:"-"`
}

// GetSequenceNumber returns the sequence number of the last event included in the projection.
func (r CatalogItems) GetSequenceNumber() uint {
	return r.SequenceNumber
}
