package memengine

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// matches evaluates filter the way the postgres engine's WHERE clause does.
func matches(filter eventstore.Filter, stored storedEvent) bool {
	if filter.IsEmpty() {
		return true
	}

	for _, item := range filter.Items() {
		if matchesItem(item, stored) {
			return true
		}
	}

	return false
}

func matchesItem(item eventstore.FilterItem, stored storedEvent) bool {
	if !item.MatchesEventType(stored.event.EventType) {
		return false
	}

	predicates := item.Predicates()
	if len(predicates) == 0 {
		return true
	}

	if item.AllPredicatesMustMatch() {
		for _, predicate := range predicates {
			if !matchesPredicate(predicate, stored.payload) {
				return false
			}
		}

		return true
	}

	for _, predicate := range predicates {
		if matchesPredicate(predicate, stored.payload) {
			return true
		}
	}

	return false
}

func matchesPredicate(predicate eventstore.FilterPredicate, payload map[string]any) bool {
	val, ok := payload[predicate.Key()].(string)

	return ok && val == predicate.Val()
}
