package errs

import (
	"errors"
	"net/http"
	"strings"
)

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "minSalary", "error": "must be at least 0" }
type FieldError struct {
	// Field is the external (caller-facing) field name the error relates to.
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type.
//
// It is designed to be serialized directly to JSON.
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST", "JOB_NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: lets the error funnel decide whether the message is shown as is.
//   - Errors: list of per-field errors.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports true for any other *HTTPError.
//
// This does NOT compare Code/Status. Use IsBadRequest / IsNotFound for that.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an *HTTPError.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

// IsBadRequest reports whether err is (or wraps) a 400 HTTPError.
func IsBadRequest(err error) bool {
	return StatusOf(err) == http.StatusBadRequest
}

// IsNotFound reports whether err is (or wraps) a 404 HTTPError.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}
