// Package desk is the circulation desk: it runs checkout and return for several items at once,
// handles hold requests and keeps the member's cart and the next-in-line notifications in step
// with the appended events.
//
// Every item is decided by its own command and succeeds or fails independently.
package desk
