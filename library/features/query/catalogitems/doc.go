// Package catalogitems implements the Catalog Items query: browse the catalog with the
// live circulation status of each item, filtered, sorted and paginated.
package catalogitems
