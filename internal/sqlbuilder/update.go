package sqlbuilder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deppfellow/jobboard/internal/errs"
	"github.com/jackc/pgx/v5"
)

// Assignment is one "field = value" pair of a partial update.
type Assignment struct {
	Field string
	Value any
}

// UpdateRequest is the ordered set of assignments of a partial update.
// Order decides placeholder positions, so it is kept as a slice rather than a map.
type UpdateRequest []Assignment

// Get returns the value assigned to field, if any.
func (r UpdateRequest) Get(field string) (any, bool) {
	for _, a := range r {
		if a.Field == field {
			return a.Value, true
		}
	}
	return nil, false
}

// Fields returns the assigned field names in order.
func (r UpdateRequest) Fields() []string {
	fields := make([]string, len(r))
	for i, a := range r {
		fields[i] = a.Field
	}
	return fields
}

// UnmarshalJSON decodes a flat JSON object, keeping key order. Values must be
// scalars; numbers decode to int64 when integral and float64 otherwise.
func (r *UpdateRequest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("update request must be a JSON object")
	}

	out := UpdateRequest{}
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		field := tok.(string) // object keys are always strings

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		value, err := scalar(raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}

		if _, dup := seen[field]; dup {
			return fmt.Errorf("field %q given more than once", field)
		}
		seen[field] = struct{}{}
		out = append(out, Assignment{Field: field, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}

func scalar(raw any) (any, error) {
	switch v := raw.(type) {
	case nil, string, bool:
		return v, nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		return v.Float64()
	default:
		return nil, fmt.Errorf("unsupported value of type %T", raw)
	}
}

// PartialUpdate renders the SET clause of a partial update:
//
//	{firstName: "Aliya", age: 32} with firstName -> first_name
//	=> `"first_name"=$1, "age"=$2`, ["Aliya", 32]
//
// An empty request is a BadRequest, since "SET" with nothing after it is not SQL.
func PartialUpdate(req UpdateRequest, fields FieldMap) (Clause, error) {
	if len(req) == 0 {
		return Clause{}, errs.NewBadRequestError("No data", false, nil, nil)
	}

	var set Predicates
	seen := make(map[string]struct{}, len(req))
	for _, a := range req {
		if _, dup := seen[a.Field]; dup {
			return Clause{}, errs.NewBadRequestError("Duplicate field in update", true, nil,
				[]errs.FieldError{{Field: a.Field, Error: "given more than once"}})
		}
		seen[a.Field] = struct{}{}

		column := pgx.Identifier{fields.Column(a.Field)}.Sanitize()
		set.Add(column+"=", a.Value)
	}

	return set.Render(", "), nil
}
