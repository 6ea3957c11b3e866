package memberloans

import (
	"time"

	"github.com/google/uuid"
)

const (
	queryType = "MemberLoans"
)

// Query represents the intent to list the borrow records of a member.
// AsOf is the point in time the overdue flags are computed for.
type Query struct {
	MemberID uuid.UUID
	AsOf     time.Time
}

// BuildQuery creates a new Query with the provided member ID.
func BuildQuery(memberID uuid.UUID, asOf time.Time) Query {
	return Query{
		MemberID: memberID,
		AsOf:     asOf,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
