// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives bound data
// from the handler, normalizes partial updates with the per-entity field
// rules, and calls repository methods to interact with the data.
package service
