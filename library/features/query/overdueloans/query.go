package overdueloans

import (
	"time"
)

const (
	queryType = "OverdueLoans"
)

// Query represents the intent to list all open borrow records that are past due at AsOf.
type Query struct {
	AsOf time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(asOf time.Time) Query {
	return Query{
		AsOf: asOf,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
