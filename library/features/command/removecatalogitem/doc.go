// Package removecatalogitem implements the Remove Catalog Item use case.
//
// An item can only leave the catalog while nobody borrows it, it is not reserved
// for a member and no hold waits for it.
package removecatalogitem
