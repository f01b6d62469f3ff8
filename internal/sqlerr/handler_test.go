package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/jobboard/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorPgErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		pgErr   *pgconn.PgError
		status  int
		code    string
		message string
	}{
		{
			name: "unknown company on job insert",
			pgErr: &pgconn.PgError{
				Code: "23503", Severity: "ERROR", TableName: "jobs",
				ColumnName: "company_handle", ConstraintName: "jobs_company_handle_fkey",
			},
			status:  http.StatusBadRequest,
			code:    "COMPANY_NOT_FOUND",
			message: "The referenced Company does not exist",
		},
		{
			name: "duplicate company name",
			pgErr: &pgconn.PgError{
				Code: "23505", Severity: "ERROR", TableName: "companies",
				ConstraintName: "companies_name_key",
			},
			status:  http.StatusBadRequest,
			code:    "COMPANY_ALREADY_EXISTS",
			message: "A Company with this Name already exists",
		},
		{
			name: "missing title",
			pgErr: &pgconn.PgError{
				Code: "23502", Severity: "ERROR", TableName: "jobs", ColumnName: "title",
			},
			status:  http.StatusBadRequest,
			code:    "JOB_REQUIRED",
			message: "The Title is required",
		},
		{
			name: "equity above one",
			pgErr: &pgconn.PgError{
				Code: "23514", Severity: "ERROR", TableName: "jobs", ColumnName: "equity",
			},
			status:  http.StatusBadRequest,
			code:    "JOB_INVALID",
			message: "The Equity value does not meet required conditions",
		},
		{
			name:    "connection dropped",
			pgErr:   &pgconn.PgError{Code: "57P01", Severity: "FATAL"},
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: http.StatusText(http.StatusInternalServerError),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := HandleError(fmt.Errorf("insert job: %w", tc.pgErr))

			var httpErr *errs.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tc.status, httpErr.Status)
			assert.Equal(t, tc.code, httpErr.Code)
			assert.Equal(t, tc.message, httpErr.Message)
		})
	}
}

func TestNotNullViolationNamesField(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "23502", Severity: "ERROR", TableName: "jobs", ColumnName: "company_handle"})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "companyHandle", Error: "is required"}, httpErr.Errors[0])
	assert.Equal(t, "JOB_REQUIRED", httpErr.Code)
}

func TestHandleErrorPassThroughAndNoRows(t *testing.T) {
	notFound := errs.NewNotFoundError("No job: 7", true, nil)
	assert.Same(t, notFound, HandleError(notFound))

	assert.True(t, errs.IsNotFound(HandleError(pgx.ErrNoRows)))
	assert.Equal(t, http.StatusInternalServerError, errs.StatusOf(HandleError(errors.New("boom"))))
}

func TestEntityNames(t *testing.T) {
	assert.Equal(t, "company", singular("companies"))
	assert.Equal(t, "job", singular("jobs"))
	assert.Equal(t, "Company", entityName("jobs", "company_handle"))
	assert.Equal(t, "Job", entityName("jobs", ""))
	assert.Equal(t, "record", entityName("", ""))
	assert.Equal(t, "companyHandle", fieldName("company_handle"))
	assert.Equal(t, "title", fieldName("title"))
	assert.Equal(t, "name", extractColumnForUniqueViolation("unique_companies_name"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23505", Severity: "ERROR"})
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrapped: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.Equal(t, SeverityError, MapSeverity("SOMETHING"))
}
