// Package mongo implements the store interfaces on MongoDB. Documents use the
// storage paths from the query package as their field names, so predicates
// translate directly into bson filters.
package mongo
