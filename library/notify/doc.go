// Package notify publishes circulation notifications such as cart changes and
// next-in-line holds. Publishing is best-effort: callers log failures and go on,
// the event store stays the source of truth.
package notify
