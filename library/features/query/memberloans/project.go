package memberloans

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// ProjectMemberLoans implements the query logic to list the borrow records of a member.
//
// Query Logic:
//
//	GIVEN: A member with MemberID
//	WHEN: MemberLoans query is executed
//	THEN: All borrow records of the member are returned
//	INCLUDES: Overdue flag of open records as of query.AsOf, days late and fine of closed ones
func ProjectMemberLoans(history core.DomainEvents, query Query, maxSequenceNumber uint) MemberLoans {
	memberID := query.MemberID.String()
	titles := make(map[core.ItemIDString]string)
	loans := make(map[core.BorrowIDString]*Loan)

	for _, event := range history {
		switch e := event.(type) {
		case core.ItemAddedToCatalog:
			titles[e.ItemID] = e.Title

		case core.ItemCheckedOut:
			if e.MemberID == memberID {
				loans[e.BorrowID] = &Loan{
					BorrowID:   e.BorrowID,
					ItemID:     e.ItemID,
					BorrowDate: e.OccurredAt,
					DueDate:    e.DueDate,
				}
			}

		case core.ItemReturned:
			if loan, ok := loans[e.BorrowID]; ok {
				returnDate := e.OccurredAt
				loan.ReturnDate = &returnDate
				loan.DaysLate = e.DaysLate
				loan.FineAccruedCents = e.FineAccruedCents
			}
		}
	}

	result := MemberLoans{
		MemberID:       memberID,
		Loans:          make([]Loan, 0, len(loans)),
		SequenceNumber: maxSequenceNumber,
	}

	for _, loan := range loans {
		loan.Title = titles[loan.ItemID]

		if loan.ReturnDate == nil {
			result.OpenCount++
			loan.Overdue = query.AsOf.After(loan.DueDate)
		}

		result.Loans = append(result.Loans, *loan)
	}

	slices.SortFunc(result.Loans, func(a, b Loan) int {
		return cmp.Or(
			cmp.Compare(openRank(a), openRank(b)),
			b.BorrowDate.Compare(a.BorrowDate),
			cmp.Compare(a.BorrowID, b.BorrowID),
		)
	})

	return result
}

func openRank(loan Loan) int {
	if loan.ReturnDate == nil {
		return 0
	}

	return 1
}

// BuildEventFilter creates the filter for querying the borrow records of the member
// and the catalog entries for the titles.
func BuildEventFilter(query Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ItemCheckedOutEventType,
			core.ItemReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P(core.PayloadKeyMemberID, query.MemberID.String())).
		OrMatching().
		AnyEventTypeOf(core.ItemAddedToCatalogEventType).
		Finalize()
}
