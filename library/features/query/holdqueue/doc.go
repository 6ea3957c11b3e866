// Package holdqueue implements the Hold Queue query: the active holds of one item in
// queue order with positions and the next-in-line marker.
package holdqueue
