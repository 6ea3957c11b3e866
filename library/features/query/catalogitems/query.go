package catalogitems

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	queryType = "CatalogItems"

	// DefaultPageSize applies when the query does not set one.
	DefaultPageSize = 20

	// MaxPageSize caps the page size.
	MaxPageSize = 100
)

// Sort orders.
const (
	SortByTitle     = "title"
	SortByTitleDesc = "-title"
	SortByType      = "type"
)

// Query represents the intent to browse the catalog.
// Empty fields do not filter. Text matches the title case-insensitively.
type Query struct {
	TypeName core.ItemType
	Status   core.ItemStatus
	Text     string
	Sort     string
	Page     int
	PageSize int
}

// BuildQuery creates a new Query and normalizes paging and sort order.
func BuildQuery(typeName core.ItemType, status core.ItemStatus, text string, sort string, page int, pageSize int) Query {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	switch sort {
	case SortByTitle, SortByTitleDesc, SortByType:
	default:
		sort = SortByTitle
	}

	return Query{
		TypeName: typeName,
		Status:   status,
		Text:     text,
		Sort:     sort,
		Page:     page,
		PageSize: pageSize,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
