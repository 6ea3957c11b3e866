// Package payfine implements the Pay Fine use case.
package payfine
