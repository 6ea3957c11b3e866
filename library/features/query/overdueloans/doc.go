// Package overdueloans implements the Overdue Loans query for the circulation desk.
package overdueloans
