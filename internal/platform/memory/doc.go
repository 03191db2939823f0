// Package memory implements the store interfaces on top of mutex-guarded
// maps. It evaluates predicates with query.Matches and is used for local runs
// and end-to-end tests.
package memory
