// Package testutils provides helpers shared by tests across the application:
// integration gating and a log handler that records entries for assertions.
package testutils
