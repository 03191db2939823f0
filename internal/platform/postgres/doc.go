// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. List queries are
// built by translating query.Predicate values into parameterized SQL over a
// fixed whitelist of columns.
package postgres
