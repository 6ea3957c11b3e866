package memberloans

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Loan is one borrow record.
type Loan struct {
	BorrowID         core.BorrowIDString `json:"borrowId"`
	ItemID           core.ItemIDString   `json:"itemId"`
	Title            string              `json:"title"`
	BorrowDate       time.Time           `json:"borrowDate"`
	DueDate          time.Time           `json:"dueDate"`
	ReturnDate       *time.Time          `json:"returnDate,omitempty"`
	DaysLate         int                 `json:"daysLate"`
	FineAccruedCents int64               `json:"fineAccruedCents"`
	Overdue          bool                `json:"overdue"`
}

// MemberLoans represents the borrow records of a member, open ones first, then by borrow date descending.
type MemberLoans struct {
	MemberID       core.MemberIDString `json:"memberId"`
	Loans          []Loan              `json:"loans"`
	OpenCount      int                 `json:"openCount"`
	SequenceNumber uint                `json:"-"`
}

// GetSequenceNumber returns the sequence number of the last event included in the projection.
func (r MemberLoans) GetSequenceNumber() uint {
	return r.SequenceNumber
}
