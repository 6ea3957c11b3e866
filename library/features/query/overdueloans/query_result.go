package overdueloans

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// OverdueLoan is an open borrow record past its due date.
// DaysOverdue and AccruingFineCents are what a return at AsOf would charge.
type OverdueLoan struct {
	BorrowID          core.BorrowIDString `json:"borrowId"`
	ItemID            core.ItemIDString   `json:"itemId"`
	Title             string              `json:"title"`
	MemberID          core.MemberIDString `json:"memberId"`
	BorrowDate        time.Time           `json:"borrowDate"`
	DueDate           time.Time           `json:"dueDate"`
	DaysOverdue       int                 `json:"daysOverdue"`
	AccruingFineCents int64               `json:"accruingFineCents"`
}

// OverdueLoans represents all overdue loans, most overdue first.
type OverdueLoans struct {
	AsOf           time.Time     `json:"asOf"`
	Loans          []OverdueLoan `json:"loans"`
	Count          int           `json:"count"`
	SequenceNumber uint          `json:"-"`
}

// GetSequenceNumber returns the sequence number of the last event included in the projection.
func (r OverdueLoans) GetSequenceNumber() uint {
	return r.SequenceNumber
}
