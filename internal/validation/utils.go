package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/jobboard/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report the JSON name ("minSalary") instead of the Go field name.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Struct validates v against its `validate` tags and returns a 400 HTTPError
// carrying one FieldError per failed field, or nil.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}
	return nil
}

// BindAndValidate binds request data into payload and validates it.
//
// NOTE: c.Bind expects a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := "Invalid request body"
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if m, ok := echoErr.Message.(string); ok {
				message = m
			}
		}
		return errs.NewBadRequestError(message, false, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		// Already shaped, e.g. by Struct.
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}

		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Error: err.Error()}}
	}

	for _, err := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.Field(),
			Error: fieldMessage(err),
		})
	}

	return "Validation failed", fieldErrors
}

// fieldMessage turns a validator failure into a short message.
func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"

	case "min":
		// min means minimum length for strings, minimum value for numbers.
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	case "url":
		return "must be a valid URL"

	case "lowercase":
		return "must be lowercase"

	case "ltefield", "gtefield":
		return fmt.Sprintf("conflicts with %s", err.Param())

	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s:%s", err.Tag(), err.Param())
		}
		return err.Tag()
	}
}
