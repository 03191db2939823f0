// Package service contains the application use cases. Services validate
// input against the domain, enforce cross-entity rules such as parent
// existence and comment ownership, and run list requests through the
// query pipeline.
//
// Services depend on the store interfaces only; the backend is chosen by
// the composition root in cmd/server.
package service
