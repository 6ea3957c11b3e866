// Package addcatalogitem implements the Add Catalog Item use case.
//
// Administrators add books, media and devices to the catalog. Adding an item that is
// already in the catalog is a no-op, re-adding a removed item puts it back.
package addcatalogitem
