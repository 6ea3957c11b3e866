package overdueloans

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Projector computes overdue loans with the fine rate of a lending policy.
type Projector struct {
	policy core.LendingPolicy
}

// NewProjector creates a Projector for policy.
func NewProjector(policy core.LendingPolicy) Projector {
	return Projector{policy: policy}
}

// Project implements the query logic to list overdue loans.
//
// Query Logic:
//
//	GIVEN: The borrow records of all members
//	WHEN: OverdueLoans query is executed
//	THEN: All open records with DueDate before query.AsOf are returned, the earliest due date first
func (p Projector) Project(history core.DomainEvents, query Query, maxSequenceNumber uint) OverdueLoans {
	loans := make([]OverdueLoan, 0)

	for _, item := range core.ProjectItemCirculations(history) {
		borrow := item.OpenBorrow
		if borrow == nil || !borrow.IsOverdueAt(query.AsOf) {
			continue
		}

		daysOverdue := core.DaysLate(borrow.DueDate, query.AsOf)
		loans = append(loans, OverdueLoan{
			BorrowID:          borrow.BorrowID,
			ItemID:            borrow.ItemID,
			Title:             item.Title,
			MemberID:          borrow.MemberID,
			BorrowDate:        borrow.BorrowDate,
			DueDate:           borrow.DueDate,
			DaysOverdue:       daysOverdue,
			AccruingFineCents: p.policy.Fine(daysOverdue),
		})
	}

	slices.SortFunc(loans, func(a, b OverdueLoan) int {
		return cmp.Or(a.DueDate.Compare(b.DueDate), cmp.Compare(a.BorrowID, b.BorrowID))
	})

	return OverdueLoans{
		AsOf:           query.AsOf,
		Loans:          loans,
		Count:          len(loans),
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter creates the filter for querying all borrow records and catalog entries.
func BuildEventFilter(_ Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ItemAddedToCatalogEventType,
			core.ItemCheckedOutEventType,
			core.ItemReturnedEventType,
		).
		Finalize()
}
