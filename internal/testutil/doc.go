// Package testutil arranges event store state for feature tests.
package testutil
