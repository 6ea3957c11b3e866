package memberholds

import (
	"github.com/google/uuid"
)

const (
	queryType = "MemberHolds"
)

// Query represents the intent to list the holds of a member.
type Query struct {
	MemberID uuid.UUID
}

// BuildQuery creates a new Query with the provided member ID.
func BuildQuery(memberID uuid.UUID) Query {
	return Query{
		MemberID: memberID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
