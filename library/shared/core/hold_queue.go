package core

import (
	"sort"
	"time"
)

// Hold is one hold request on an item as projected from HoldRequested, HoldFulfilled and HoldCancelled.
type Hold struct {
	HoldID    HoldIDString
	ItemID    ItemIDString
	MemberID  MemberIDString
	CreatedAt time.Time
	Status    HoldStatus

	// Collected is set once the member of a fulfilled hold has checked out the item.
	Collected bool

	appendOrder int
}

// IsActive reports whether the hold still waits in the queue.
func (h Hold) IsActive() bool {
	return h.Status == HoldStatusActive
}

// HoldQueue is the ordered list of active holds of one item: FIFO by CreatedAt, ties by append order.
// The first entry is next in line.
type HoldQueue []Hold

// BuildHoldQueue returns the active holds of holds in queue order.
// Fulfilled and cancelled holds are not part of the queue.
func BuildHoldQueue(holds []Hold) HoldQueue {
	queue := make(HoldQueue, 0, len(holds))
	for _, hold := range holds {
		if hold.IsActive() {
			queue = append(queue, hold)
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		if !queue[i].CreatedAt.Equal(queue[j].CreatedAt) {
			return queue[i].CreatedAt.Before(queue[j].CreatedAt)
		}

		return queue[i].appendOrder < queue[j].appendOrder
	})

	return queue
}

// Next returns the next-in-line hold, false if the queue is empty.
func (q HoldQueue) Next() (Hold, bool) {
	if len(q) == 0 {
		return Hold{}, false
	}

	return q[0], true
}

// IsNextInLine reports whether holdID is the first hold of the queue.
func (q HoldQueue) IsNextInLine(holdID HoldIDString) bool {
	next, ok := q.Next()

	return ok && next.HoldID == holdID
}

// PositionOf returns the 1-based queue position of the active hold of memberID, 0 if there is none.
func (q HoldQueue) PositionOf(memberID MemberIDString) int {
	for i, hold := range q {
		if hold.MemberID == memberID {
			return i + 1
		}
	}

	return 0
}

// ActiveFor returns the active hold of memberID.
func (q HoldQueue) ActiveFor(memberID MemberIDString) (Hold, bool) {
	for _, hold := range q {
		if hold.MemberID == memberID {
			return hold, true
		}
	}

	return Hold{}, false
}

// Without returns the queue without holdID, the remaining holds keep their order.
func (q HoldQueue) Without(holdID HoldIDString) HoldQueue {
	rest := make(HoldQueue, 0, len(q))
	for _, hold := range q {
		if hold.HoldID != holdID {
			rest = append(rest, hold)
		}
	}

	return rest
}
