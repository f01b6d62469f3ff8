// Package repository handles all interactions with the database.
//
// It contains the SQL of every job and company operation. Dynamic fragments
// (partial-update SET clauses and search WHERE bodies) are produced by the
// sqlbuilder package; everything else is fixed text. Store errors are
// returned to the caller wrapped but otherwise untouched.
package repository

import (
	"errors"
	"fmt"

	"github.com/deppfellow/jobboard/internal/errs"
	"github.com/deppfellow/jobboard/internal/sqlbuilder"
	"github.com/jackc/pgx/v5"
)

// checkUpdatable rejects assignments to identity fields and to fields the
// entity does not have. Identity fields are reported first.
func checkUpdatable(req sqlbuilder.UpdateRequest, fields sqlbuilder.FieldMap, immutable ...string) error {
	var fieldErrors []errs.FieldError
	for _, a := range req {
		for _, name := range immutable {
			if a.Field == name {
				fieldErrors = append(fieldErrors, errs.FieldError{Field: a.Field, Error: "cannot be changed"})
			}
		}
	}
	if fieldErrors != nil {
		return errs.NewBadRequestError("Identity fields cannot be updated", true, nil, fieldErrors)
	}

	for _, a := range req {
		if !fields.Has(a.Field) {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: a.Field, Error: "is not a known field"})
		}
	}
	if fieldErrors != nil {
		return errs.NewBadRequestError("Unknown fields in update", true, nil, fieldErrors)
	}
	return nil
}

// notFound turns pgx.ErrNoRows into a 404 and wraps anything else with op.
func notFound(err error, op, message string, code string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError(message, true, &code)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func likePattern(s string) string {
	return "%" + s + "%"
}
