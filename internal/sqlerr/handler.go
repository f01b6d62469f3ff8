package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/jobboard/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the mapped Code for a given error, or Other.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// violation describes how a client-caused database error is reported.
type violation struct {
	// action is the suffix of the error code, e.g. COMPANY_ALREADY_EXISTS.
	action   string
	override bool
	message  func(e *Error) string
}

var violations = map[Code]violation{
	ForeignKeyViolation: {
		action: "NOT_FOUND",
		message: func(e *Error) string {
			return fmt.Sprintf("The referenced %s does not exist", entityName(e.TableName, e.ColumnName))
		},
	},
	UniqueViolation: {
		action:   "ALREADY_EXISTS",
		override: true,
		message: func(e *Error) string {
			identifier := "identifier"
			if column := extractColumnForUniqueViolation(e.ConstraintName); column != "" {
				identifier = humanizeText(column)
			}
			return fmt.Sprintf("A %s with this %s already exists", entityName(e.TableName, ""), identifier)
		},
	},
	NotNullViolation: {
		action:   "REQUIRED",
		override: true,
		message: func(e *Error) string {
			field := humanizeText(e.ColumnName)
			if field == "" {
				field = "field"
			}
			return fmt.Sprintf("The %s is required", field)
		},
	},
	CheckViolation: {
		action:   "INVALID",
		override: true,
		message: func(e *Error) string {
			if field := humanizeText(e.ColumnName); field != "" {
				return fmt.Sprintf("The %s value does not meet required conditions", field)
			}
			return "One or more values do not meet required conditions"
		},
	},
	InvalidTextRep: {
		action:   "INVALID",
		override: true,
		message:  invalidFormat,
	},
	NumericOutOfRange: {
		action:   "INVALID",
		override: true,
		message:  invalidFormat,
	},
}

func invalidFormat(*Error) string {
	return "One or more values have an invalid format"
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - *pgconn.PgError: 400 for constraint and format violations, 500 otherwise
//   - pgx.ErrNoRows / sql.ErrNoRows: 404
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return errs.NewInternalServerError()
	}

	sqlErr := ConvertPgError(pgerr)
	v, ok := violations[sqlErr.Code]
	if !ok {
		return errs.NewInternalServerError()
	}

	code := errorCode(sqlErr, v.action)

	var fieldErrors []errs.FieldError
	if sqlErr.Code == NotNullViolation && sqlErr.ColumnName != "" {
		fieldErrors = []errs.FieldError{{Field: fieldName(sqlErr.ColumnName), Error: "is required"}}
	}

	return errs.NewBadRequestError(v.message(sqlErr), v.override, &code, fieldErrors)
}

// errorCode builds <ENTITY>_<ACTION>. A missing foreign key names the
// referenced entity (jobs.company_handle -> COMPANY_NOT_FOUND); every other
// violation names the table's entity (companies -> COMPANY_ALREADY_EXISTS).
func errorCode(e *Error, action string) string {
	entity := singular(e.TableName)
	if e.Code == ForeignKeyViolation {
		if referenced, ok := referencedEntity(e.ColumnName); ok {
			entity = referenced
		}
	}
	if entity == "" {
		entity = "record"
	}
	return strings.ToUpper(entity) + "_" + action
}

// singular turns a table name into its entity name: "jobs" -> "job",
// "companies" -> "company".
func singular(table string) string {
	lower := strings.ToLower(table)
	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 3:
		return lower[:len(lower)-3] + "y"
	case strings.HasSuffix(lower, "s") && len(lower) > 1:
		return lower[:len(lower)-1]
	}
	return lower
}

// referencedEntity reads the entity out of a reference column:
// "company_handle" -> "company".
func referencedEntity(column string) (string, bool) {
	lower := strings.ToLower(column)
	for _, suffix := range []string{"_id", "_handle"} {
		if strings.HasSuffix(lower, suffix) && len(lower) > len(suffix) {
			return strings.TrimSuffix(lower, suffix), true
		}
	}
	return "", false
}

// entityName is the human form used in messages: the referenced entity when
// the column names one, else the table's entity.
func entityName(table, column string) string {
	if referenced, ok := referencedEntity(column); ok {
		return humanizeText(referenced)
	}
	if table != "" {
		return humanizeText(singular(table))
	}
	return "record"
}

// humanizeText converts snake_case into Title Case: "num_employees" -> "Num Employees".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// fieldName maps a column to its JSON field: "company_handle" -> "companyHandle".
func fieldName(column string) string {
	parts := strings.Split(strings.ToLower(column), "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column from a unique constraint name.
//
// Supported conventions:
//
//  1. "unique_<table>_<column>"   e.g. unique_companies_name -> "name"
//  2. "<table>_<column>_(key|ukey)" e.g. companies_name_key -> "name"
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeyPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}
