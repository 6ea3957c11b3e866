// Package memberholds implements the Member Holds query: every hold of a member with
// its current status and queue position.
//
// Queue positions depend on the holds of other members, so the handler reads in two
// steps: the member's hold requests first, then the circulation events of those items.
package memberholds
