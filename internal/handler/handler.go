// Package handler is the HTTP layer: the first entry point for business
// logic after the router.
//
// It binds and validates requests through the validation package, calls
// the service layer and shapes the JSON responses.
package handler
