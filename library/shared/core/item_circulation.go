package core

import (
	"time"
)

// Borrow is a borrow record as projected from ItemCheckedOut and ItemReturned.
type Borrow struct {
	BorrowID         BorrowIDString
	ItemID           ItemIDString
	MemberID         MemberIDString
	BorrowDate       time.Time
	DueDate          time.Time
	ReturnDate       *time.Time
	DaysLate         int
	FineAccruedCents int64
}

// IsOpen reports whether the item has not been returned yet.
func (b Borrow) IsOpen() bool {
	return b.ReturnDate == nil
}

// IsOverdueAt reports whether an open borrow is past its due date at t.
func (b Borrow) IsOverdueAt(t time.Time) bool {
	return b.IsOpen() && t.After(b.DueDate)
}

// ItemCirculation is the circulation state of one catalog item.
type ItemCirculation struct {
	ItemID    ItemIDString
	InCatalog bool
	Removed   bool
	Title     string
	TypeName  ItemType
	Status    ItemStatus

	OpenBorrow *Borrow
	LastBorrow *Borrow

	// ReservedFor is the member of a fulfilled, not yet collected hold.
	ReservedFor    MemberIDString
	ReservedHoldID HoldIDString

	holds []Hold
}

// ProjectItemCirculation replays history and returns the circulation state of itemID.
// Events of other items are ignored, so history may be the result of a broader filter.
func ProjectItemCirculation(history DomainEvents, itemID ItemIDString) ItemCirculation {
	s := ItemCirculation{
		ItemID: itemID,
		Status: ItemStatusAvailable,
	}

	for i, event := range history {
		switch e := event.(type) {
		case ItemAddedToCatalog:
			if e.ItemID == itemID {
				s.InCatalog = true
				s.Removed = false
				s.Title = e.Title
				s.TypeName = e.TypeName
			}

		case ItemRemovedFromCatalog:
			if e.ItemID == itemID {
				s.InCatalog = false
				s.Removed = true
			}

		case ItemCheckedOut:
			if e.ItemID == itemID {
				s.applyCheckedOut(e)
			}

		case ItemReturned:
			if e.ItemID == itemID {
				s.applyReturned(e)
			}

		case HoldRequested:
			if e.ItemID == itemID {
				s.holds = append(s.holds, Hold{
					HoldID:      e.HoldID,
					ItemID:      e.ItemID,
					MemberID:    e.MemberID,
					CreatedAt:   e.OccurredAt,
					Status:      HoldStatusActive,
					appendOrder: i,
				})
			}

		case HoldFulfilled:
			if e.ItemID == itemID {
				s.setHoldStatus(e.HoldID, HoldStatusFulfilled)
				s.ReservedFor = e.MemberID
				s.ReservedHoldID = e.HoldID
			}

		case HoldCancelled:
			if e.ItemID == itemID {
				s.setHoldStatus(e.HoldID, HoldStatusCancelled)
				if s.ReservedHoldID == e.HoldID {
					s.clearReservation()
				}
			}
		}
	}

	return s
}

func (s *ItemCirculation) applyCheckedOut(e ItemCheckedOut) {
	s.Status = ItemStatusCheckedOut
	s.OpenBorrow = &Borrow{
		BorrowID:   e.BorrowID,
		ItemID:     e.ItemID,
		MemberID:   e.MemberID,
		BorrowDate: e.OccurredAt,
		DueDate:    e.DueDate,
	}

	if s.ReservedFor == e.MemberID {
		for i := range s.holds {
			if s.holds[i].HoldID == s.ReservedHoldID {
				s.holds[i].Collected = true
			}
		}

		s.clearReservation()
	}
}

func (s *ItemCirculation) applyReturned(e ItemReturned) {
	s.Status = ItemStatusAvailable

	if s.OpenBorrow == nil {
		return
	}

	returnDate := e.OccurredAt
	closed := *s.OpenBorrow
	closed.ReturnDate = &returnDate
	closed.DaysLate = e.DaysLate
	closed.FineAccruedCents = e.FineAccruedCents

	s.LastBorrow = &closed
	s.OpenBorrow = nil
}

func (s *ItemCirculation) setHoldStatus(holdID HoldIDString, status HoldStatus) {
	for i := range s.holds {
		if s.holds[i].HoldID == holdID {
			s.holds[i].Status = status
		}
	}
}

func (s *ItemCirculation) clearReservation() {
	s.ReservedFor = ""
	s.ReservedHoldID = ""
}

// Queue returns the active holds in queue order.
func (s ItemCirculation) Queue() HoldQueue {
	return BuildHoldQueue(s.holds)
}

// Holds returns all holds ever requested on the item in append order.
func (s ItemCirculation) Holds() []Hold {
	holds := make([]Hold, len(s.holds))
	copy(holds, s.holds)

	return holds
}

// LatestHoldOf returns the most recently requested hold of memberID regardless of its status.
func (s ItemCirculation) LatestHoldOf(memberID MemberIDString) (Hold, bool) {
	for i := len(s.holds) - 1; i >= 0; i-- {
		if s.holds[i].MemberID == memberID {
			return s.holds[i], true
		}
	}

	return Hold{}, false
}

// IsReserved reports whether a fulfilled hold reserves the item.
func (s ItemCirculation) IsReserved() bool {
	return s.ReservedFor != ""
}

// IsBorrowedBy reports whether memberID currently borrows the item.
func (s ItemCirculation) IsBorrowedBy(memberID MemberIDString) bool {
	return s.OpenBorrow != nil && s.OpenBorrow.MemberID == memberID
}

// IsAssignable reports whether a fulfillment may reserve the item for the next hold.
func (s ItemCirculation) IsAssignable() bool {
	return s.InCatalog && s.Status == ItemStatusAvailable && !s.IsReserved()
}

// ItemCirculationEventTypes are the success events ProjectItemCirculation reads.
func ItemCirculationEventTypes() []EventTypeString {
	return []EventTypeString{
		ItemAddedToCatalogEventType,
		ItemRemovedFromCatalogEventType,
		ItemCheckedOutEventType,
		ItemReturnedEventType,
		HoldRequestedEventType,
		HoldCancelledEventType,
		HoldFulfilledEventType,
	}
}

// ProjectItemCirculations returns the circulation state of every item that occurs in history.
// Only items that were added to the catalog at some point are included.
func ProjectItemCirculations(history DomainEvents) map[ItemIDString]ItemCirculation {
	byItem := make(map[ItemIDString]DomainEvents)
	for _, event := range history {
		if itemID, ok := itemIDOf(event); ok {
			byItem[itemID] = append(byItem[itemID], event)
		}
	}

	items := make(map[ItemIDString]ItemCirculation, len(byItem))
	for itemID, events := range byItem {
		item := ProjectItemCirculation(events, itemID)
		if item.InCatalog || item.Removed {
			items[itemID] = item
		}
	}

	return items
}

func itemIDOf(event DomainEvent) (ItemIDString, bool) {
	switch e := event.(type) {
	case ItemAddedToCatalog:
		return e.ItemID, true
	case ItemRemovedFromCatalog:
		return e.ItemID, true
	case ItemCheckedOut:
		return e.ItemID, true
	case ItemReturned:
		return e.ItemID, true
	case HoldRequested:
		return e.ItemID, true
	case HoldCancelled:
		return e.ItemID, true
	case HoldFulfilled:
		return e.ItemID, true
	default:
		return "", false
	}
}
