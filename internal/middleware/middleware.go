// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as admin
// authentication, request ids, request logging, tracing, CORS and panic
// recovery.
package middleware
