// Package store defines the persistence contracts shared by every storage
// backend. Each entity store is also a query.Finder so the list pipeline can
// run against it unchanged.
package store
