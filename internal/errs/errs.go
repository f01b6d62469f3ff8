// Package errs defines the error types the job board reports to its callers.
//
// Every error that crosses a package boundary on purpose is an *HTTPError:
// repositories return BadRequest when the caller sent something structurally
// invalid (an empty update, a negative salary filter, an attempt to change a
// company handle) and NotFound when the referenced job or company does not
// exist. The HTTP layer serializes these directly to JSON.
package errs
