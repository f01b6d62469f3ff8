package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/deppfellow/jobboard/internal/errs"
	"github.com/deppfellow/jobboard/internal/sqlbuilder"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldRule checks one value of a partial update and returns it in the form
// it should be bound to the query.
type FieldRule func(value any) (any, error)

// FieldRules holds the rule of every field an entity accepts in a partial update.
type FieldRules map[string]FieldRule

// Apply runs the matching rule over every assignment of req and returns the
// normalized request. Fields without a rule are passed through untouched;
// deciding whether they are allowed at all is the repository's job.
func (rules FieldRules) Apply(req sqlbuilder.UpdateRequest) (sqlbuilder.UpdateRequest, error) {
	out := make(sqlbuilder.UpdateRequest, 0, len(req))
	var fieldErrors []errs.FieldError

	for _, a := range req {
		rule, ok := rules[a.Field]
		if !ok {
			out = append(out, a)
			continue
		}

		value, err := rule(a.Value)
		if err != nil {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: a.Field, Error: err.Error()})
			continue
		}
		out = append(out, sqlbuilder.Assignment{Field: a.Field, Value: value})
	}

	if fieldErrors != nil {
		return nil, errs.NewBadRequestError("Validation failed", true, nil, fieldErrors)
	}
	return out, nil
}

// String accepts string values satisfying the validator tag (may be empty).
func String(tag string) FieldRule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, errors.New("must be a string")
		}
		if err := checkVar(s, tag); err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Integer accepts whole numbers satisfying the validator tag (may be empty).
// The value is normalized to int.
func Integer(tag string) FieldRule {
	return func(value any) (any, error) {
		var n int
		switch v := value.(type) {
		case int:
			n = v
		case int32:
			n = int(v)
		case int64:
			if v > math.MaxInt32 || v < math.MinInt32 {
				return nil, errors.New("is out of range")
			}
			n = int(v)
		case float64:
			if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
				return nil, errors.New("must be an integer")
			}
			n = int(v)
		default:
			return nil, errors.New("must be an integer")
		}
		if err := checkVar(n, tag); err != nil {
			return nil, err
		}
		return n, nil
	}
}

// Decimal accepts decimal numbers, or strings holding one, within [lo, hi].
// The value is normalized to decimal.Decimal.
func Decimal(lo, hi decimal.Decimal) FieldRule {
	return func(value any) (any, error) {
		var d decimal.Decimal
		switch v := value.(type) {
		case string:
			parsed, err := decimal.NewFromString(v)
			if err != nil {
				return nil, errors.New("must be a decimal number")
			}
			d = parsed
		case int64:
			d = decimal.NewFromInt(v)
		case int:
			d = decimal.NewFromInt(int64(v))
		case float64:
			d = decimal.NewFromFloat(v)
		default:
			return nil, errors.New("must be a decimal number")
		}
		if d.LessThan(lo) || d.GreaterThan(hi) {
			return nil, fmt.Errorf("must be between %s and %s", lo, hi)
		}
		return d, nil
	}
}

// Nullable lets nil through and applies rule to anything else.
func Nullable(rule FieldRule) FieldRule {
	return func(value any) (any, error) {
		if value == nil {
			return nil, nil
		}
		return rule(value)
	}
}

func checkVar(value any, tag string) error {
	if tag == "" {
		return nil
	}
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return errors.New(fieldMessage(validationErrors[0]))
	}
	return err
}
