package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/deppfellow/jobboard/internal/errs"
	"github.com/deppfellow/jobboard/internal/model"
	"github.com/deppfellow/jobboard/internal/sqlbuilder"
	"github.com/google/go-cmp/cmp"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var companyRowColumns = []string{"handle", "name", "description", "num_employees", "logo_url"}

func TestCompanySearchClause(t *testing.T) {
	clause, err := CompanySearchClause(model.CompanySearchCriteria{
		MaxEmployees: ptr(100),
		Name:         ptr("net"),
		MinEmployees: ptr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "name ILIKE $1 AND num_employees >= $2 AND num_employees <= $3", clause.SQL)
	assert.Equal(t, []any{"%net%", 10, 100}, clause.Args)

	clause, err = CompanySearchClause(model.CompanySearchCriteria{MaxEmployees: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, "num_employees <= $1", clause.SQL)

	clause, err = CompanySearchClause(model.CompanySearchCriteria{})
	require.NoError(t, err)
	assert.True(t, clause.Empty())
}

func TestCompanySearchClauseRejects(t *testing.T) {
	_, err := CompanySearchClause(model.CompanySearchCriteria{MinEmployees: ptr(10), MaxEmployees: ptr(5)})
	assert.True(t, errs.IsBadRequest(err))

	_, err = CompanySearchClause(model.CompanySearchCriteria{MinEmployees: ptr(-1)})
	assert.True(t, errs.IsBadRequest(err))
}

func TestCompanyFindAll(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM companies\nWHERE num_employees >= $1\nORDER BY name")).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows(companyRowColumns).
			AddRow("c2", "C2", "Desc2", ptr(2), ptr("http://c2.img")).
			AddRow("c3", "C3", "Desc3", ptr(3), nil))

	companies, err := NewCompanyRepository(mock).FindAll(context.Background(), model.CompanySearchCriteria{MinEmployees: ptr(2)})
	require.NoError(t, err)

	want := []model.Company{
		{Handle: "c2", Name: "C2", Description: "Desc2", NumEmployees: ptr(2), LogoURL: ptr("http://c2.img")},
		{Handle: "c3", Name: "C3", Description: "Desc3", NumEmployees: ptr(3)},
	}
	if diff := cmp.Diff(want, companies); diff != "" {
		t.Errorf("FindAll() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompanyGetIncludesJobs(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM companies\nWHERE handle = $1")).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows(companyRowColumns).
			AddRow("c1", "C1", "Desc1", ptr(1), nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs\nWHERE company_handle = $1\nORDER BY title, id")).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows(jobRowColumns).
			AddRow(1, "J1", ptr(1), "0.1", "c1").
			AddRow(3, "J3", ptr(3), nil, "c1"))

	company, err := NewCompanyRepository(mock).Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "C1", company.Name)
	require.Len(t, company.Jobs, 2)
	assert.Equal(t, "J1", company.Jobs[0].Title)
	assert.Empty(t, company.Jobs[0].CompanyName)
}

func TestCompanyGetNotFound(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE handle = $1")).
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows(companyRowColumns))

	_, err := NewCompanyRepository(mock).Get(context.Background(), "nope")
	require.True(t, errs.IsNotFound(err))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "No company: nope", httpErr.Message)
}

func TestCompanyUpdateMapsAliases(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE companies SET "num_employees"=$1, "logo_url"=$2
WHERE handle = $3
RETURNING handle, name, description, num_employees, logo_url`)).
		WithArgs(50, nil, "c1").
		WillReturnRows(pgxmock.NewRows(companyRowColumns).
			AddRow("c1", "C1", "Desc1", ptr(50), nil))

	company, err := NewCompanyRepository(mock).Update(context.Background(), "c1", sqlbuilder.UpdateRequest{
		{Field: "numEmployees", Value: 50},
		{Field: "logoUrl", Value: nil},
	})
	require.NoError(t, err)
	assert.Equal(t, ptr(50), company.NumEmployees)
	assert.Nil(t, company.LogoURL)
}

func TestCompanyUpdateRejectsHandle(t *testing.T) {
	mock := newMockPool(t)

	_, err := NewCompanyRepository(mock).Update(context.Background(), "c1", sqlbuilder.UpdateRequest{
		{Field: "handle", Value: "c9"},
	})
	assert.True(t, errs.IsBadRequest(err))

	_, err = NewCompanyRepository(mock).Update(context.Background(), "c1", sqlbuilder.UpdateRequest{
		{Field: "num_employees", Value: 3},
	})
	assert.True(t, errs.IsBadRequest(err))
}

func TestCompanyRemove(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM companies WHERE handle = $1 RETURNING handle")).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"handle"}).AddRow("c1"))
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM companies WHERE handle = $1 RETURNING handle")).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"handle"}))

	repo := NewCompanyRepository(mock)
	deleted, err := repo.Remove(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", deleted)

	_, err = repo.Remove(context.Background(), "c1")
	assert.True(t, errs.IsNotFound(err))
}
