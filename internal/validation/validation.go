// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or numeric minimums) defined in struct tags,
// checks the values of partial updates field by field, and
// converts failures into 400 errors with field-level details
// the client can understand.
package validation
