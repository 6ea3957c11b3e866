package cart

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Category tells why an item is in the cart.
type Category string

const (
	CategoryInCart Category = "InCart"
	CategoryOnHold Category = "OnHold"
)

func (c Category) IsValid() bool {
	return c == CategoryInCart || c == CategoryOnHold
}

// Entry is one cart line. ItemID is unique within a cart.
type Entry struct {
	ItemID   core.ItemIDString `json:"itemId"`
	Title    string            `json:"title"`
	TypeName core.ItemType     `json:"typeName"`
	Status   core.ItemStatus   `json:"status"`
	Category Category          `json:"category"`
}

// Entries is the ordered content of one cart.
type Entries []Entry

func (e Entries) indexOf(itemID core.ItemIDString) int {
	for i, entry := range e {
		if entry.ItemID == itemID {
			return i
		}
	}

	return -1
}

// Contains reports whether itemID is in the cart.
func (e Entries) Contains(itemID core.ItemIDString) bool {
	return e.indexOf(itemID) >= 0
}

// ItemIDs returns the item ids in cart order.
func (e Entries) ItemIDs() []core.ItemIDString {
	ids := make([]core.ItemIDString, 0, len(e))
	for _, entry := range e {
		ids = append(ids, entry.ItemID)
	}

	return ids
}
