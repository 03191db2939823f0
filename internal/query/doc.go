// Package query implements the list pipeline shared by every collection
// endpoint: it normalizes raw query-string input into a Filter, builds search
// predicates, resolves sort keys against a per-entity PropertyMap, runs the
// count and page fetch through a Finder and assembles the Paginator envelope.
//
// The package has no knowledge of a concrete storage engine. Backends translate
// the closed Predicate vocabulary (MatchAll, FieldEquals, FieldContains, Or)
// into their own query language.
package query
