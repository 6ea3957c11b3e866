// Package cart implements the session cart: a list of catalog items a member is about
// to check out or is waiting for.
//
// Every mutation loads the session's list, changes it, persists the full list (last
// write wins) and fires a cart.changed notification.
package cart
