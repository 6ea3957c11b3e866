package catalogitems

import (
	"cmp"
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// ProjectCatalogItems implements the query logic to list the catalog.
//
// Query Logic:
//
//	GIVEN: The circulation events of all items
//	WHEN: CatalogItems query is executed
//	THEN: One page of the items that match the filters is returned, sorted as requested
//	EXCLUDES: Items removed from the catalog
func ProjectCatalogItems(history core.DomainEvents, query Query, maxSequenceNumber uint) CatalogItems {
	text := strings.ToLower(strings.TrimSpace(query.Text))
	matching := make([]CatalogItem, 0)

	for _, item := range core.ProjectItemCirculations(history) {
		if !item.InCatalog {
			continue
		}

		if query.TypeName != "" && item.TypeName != query.TypeName {
			continue
		}

		if query.Status != "" && item.Status != query.Status {
			continue
		}

		if text != "" && !strings.Contains(strings.ToLower(item.Title), text) {
			continue
		}

		matching = append(matching, CatalogItem{
			ItemID:      item.ItemID,
			Title:       item.Title,
			TypeName:    item.TypeName,
			Status:      item.Status,
			ReservedFor: item.ReservedFor,
			ActiveHolds: len(item.Queue()),
		})
	}

	slices.SortFunc(matching, compareFor(query.Sort))

	return CatalogItems{
		Items:          page(matching, query.Page, query.PageSize),
		Total:          len(matching),
		Page:           query.Page,
		PageSize:       query.PageSize,
		SequenceNumber: maxSequenceNumber,
	}
}

func compareFor(sort string) func(a, b CatalogItem) int {
	byTitle := func(a, b CatalogItem) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)),
			cmp.Compare(a.ItemID, b.ItemID),
		)
	}

	switch sort {
	case SortByTitleDesc:
		return func(a, b CatalogItem) int { return byTitle(b, a) }
	case SortByType:
		return func(a, b CatalogItem) int {
			return cmp.Or(cmp.Compare(a.TypeName, b.TypeName), byTitle(a, b))
		}
	default:
		return byTitle
	}
}

func page(items []CatalogItem, pageNumber int, pageSize int) []CatalogItem {
	pages := (len(items) + pageSize - 1) / pageSize
	if pageNumber-1 >= pages {
		return []CatalogItem{}
	}

	from := (pageNumber - 1) * pageSize

	return items[from:min(from+pageSize, len(items))]
}

// BuildEventFilter creates the filter for querying the circulation events of all items.
// Hold requests are part of it for the hold counts.
func BuildEventFilter(_ Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ItemAddedToCatalogEventType,
			core.ItemRemovedFromCatalogEventType,
			core.ItemCheckedOutEventType,
			core.ItemReturnedEventType,
			core.HoldRequestedEventType,
			core.HoldCancelledEventType,
			core.HoldFulfilledEventType,
		).
		Finalize()
}
