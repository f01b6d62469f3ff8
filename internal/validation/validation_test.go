package validation

import (
	"errors"
	"testing"

	"github.com/deppfellow/jobboard/internal/errs"
	"github.com/deppfellow/jobboard/internal/model"
	"github.com/deppfellow/jobboard/internal/sqlbuilder"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jobRules = FieldRules{
	"title":  String("min=1"),
	"salary": Nullable(Integer("min=0")),
	"equity": Nullable(Decimal(decimal.Zero, decimal.NewFromInt(1))),
}

func TestFieldRulesApply(t *testing.T) {
	out, err := jobRules.Apply(sqlbuilder.UpdateRequest{
		{Field: "equity", Value: "0.25"},
		{Field: "title", Value: "Engineer"},
		{Field: "salary", Value: int64(90000)},
		{Field: "companyHandle", Value: "c2"},
	})
	require.NoError(t, err)

	require.Len(t, out, 4)
	assert.Equal(t, []string{"equity", "title", "salary", "companyHandle"}, out.Fields())
	assert.True(t, decimal.RequireFromString("0.25").Equal(out[0].Value.(decimal.Decimal)))
	assert.Equal(t, "Engineer", out[1].Value)
	assert.Equal(t, 90000, out[2].Value)
	assert.Equal(t, "c2", out[3].Value)
}

func TestFieldRulesApplyNulls(t *testing.T) {
	out, err := jobRules.Apply(sqlbuilder.UpdateRequest{
		{Field: "salary", Value: nil},
		{Field: "equity", Value: nil},
	})
	require.NoError(t, err)
	assert.Nil(t, out[0].Value)
	assert.Nil(t, out[1].Value)
}

func TestFieldRulesApplyCollectsFieldErrors(t *testing.T) {
	_, err := jobRules.Apply(sqlbuilder.UpdateRequest{
		{Field: "title", Value: int64(5)},
		{Field: "salary", Value: int64(-1)},
		{Field: "equity", Value: "1.5"},
	})
	require.True(t, errs.IsBadRequest(err))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, []errs.FieldError{
		{Field: "title", Error: "must be a string"},
		{Field: "salary", Error: "must be at least 0"},
		{Field: "equity", Error: "must be between 0 and 1"},
	}, httpErr.Errors)
}

func TestIntegerRule(t *testing.T) {
	rule := Integer("")

	v, err := rule(float64(3))
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = rule(2.5)
	assert.Error(t, err)
	_, err = rule("3")
	assert.Error(t, err)
	_, err = rule(int64(1) << 40)
	assert.Error(t, err)
}

func TestTitleRuleRejectsEmpty(t *testing.T) {
	_, err := String("min=1")("")
	assert.EqualError(t, err, "must be at least 1 characters")
}

func TestStruct(t *testing.T) {
	negative := -10
	err := Struct(model.JobSearchCriteria{MinSalary: &negative})
	require.True(t, errs.IsBadRequest(err))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, []errs.FieldError{{Field: "minSalary", Error: "must be at least 0"}}, httpErr.Errors)

	zero := 0
	assert.NoError(t, Struct(model.JobSearchCriteria{MinSalary: &zero}))
	assert.NoError(t, Struct(model.JobSearchCriteria{}))
}

func TestExtractCustomValidationErrors(t *testing.T) {
	msg, fieldErrors := extractValidationError(CustomValidationErrors{
		{Field: "minEmployees", Message: "cannot be greater than maxEmployees"},
	})
	assert.Equal(t, "Validation failed", msg)
	assert.Equal(t, []errs.FieldError{{Field: "minEmployees", Error: "cannot be greater than maxEmployees"}}, fieldErrors)
}
