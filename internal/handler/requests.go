package handler

import (
	"strconv"
	"strings"

	"github.com/deppfellow/jobboard/internal/model"
	"github.com/deppfellow/jobboard/internal/sqlbuilder"
	"github.com/deppfellow/jobboard/internal/validation"
	"github.com/shopspring/decimal"
)

// ListJobsRequest binds the raw query string of GET /jobs. Values stay
// strings until Validate, so a malformed number is a field error rather
// than a bind failure.
type ListJobsRequest struct {
	Title     string `query:"title"`
	MinSalary string `query:"minSalary"`
	HasEquity string `query:"hasEquity"`

	criteria model.JobSearchCriteria
}

func (r *ListJobsRequest) Validate() error {
	var problems validation.CustomValidationErrors

	if r.Title != "" {
		r.criteria.Title = &r.Title
	}
	if r.MinSalary != "" {
		n, err := strconv.Atoi(strings.TrimSpace(r.MinSalary))
		if err != nil {
			problems = append(problems, validation.CustomValidationError{Field: "minSalary", Message: "must be an integer"})
		} else {
			r.criteria.MinSalary = &n
		}
	}
	if r.HasEquity != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(r.HasEquity))
		if err != nil {
			problems = append(problems, validation.CustomValidationError{Field: "hasEquity", Message: "must be true or false"})
		} else {
			r.criteria.HasEquity = &b
		}
	}

	if problems != nil {
		return problems
	}
	return nil
}

// Criteria returns the search criteria parsed by Validate.
func (r *ListJobsRequest) Criteria() model.JobSearchCriteria {
	return r.criteria
}

type JobIDRequest struct {
	ID int `param:"id"`
}

func (r *JobIDRequest) Validate() error {
	return nil
}

type CreateJobRequest struct {
	model.NewJob
}

func (r *CreateJobRequest) Validate() error {
	if err := validation.Struct(r.NewJob); err != nil {
		return err
	}
	if r.Equity.Valid && (r.Equity.Decimal.IsNegative() || r.Equity.Decimal.GreaterThan(decimal.NewFromInt(1))) {
		return validation.CustomValidationErrors{{Field: "equity", Message: "must be between 0 and 1"}}
	}
	return nil
}

// UpdateJobRequest is the body of PATCH /jobs/:id. The body keeps its key
// order, which decides the placeholder order of the UPDATE.
type UpdateJobRequest struct {
	ID      int                      `param:"id" json:"-"`
	Changes sqlbuilder.UpdateRequest `json:"-"`
}

func (r *UpdateJobRequest) UnmarshalJSON(data []byte) error {
	return r.Changes.UnmarshalJSON(data)
}

func (r *UpdateJobRequest) Validate() error {
	return nil
}

// ListCompaniesRequest binds the raw query string of GET /companies.
type ListCompaniesRequest struct {
	Name         string `query:"name"`
	MinEmployees string `query:"minEmployees"`
	MaxEmployees string `query:"maxEmployees"`

	criteria model.CompanySearchCriteria
}

func (r *ListCompaniesRequest) Validate() error {
	var problems validation.CustomValidationErrors

	if r.Name != "" {
		r.criteria.Name = &r.Name
	}
	for _, p := range []struct {
		field string
		raw   string
		dst   **int
	}{
		{"minEmployees", r.MinEmployees, &r.criteria.MinEmployees},
		{"maxEmployees", r.MaxEmployees, &r.criteria.MaxEmployees},
	} {
		if p.raw == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(p.raw))
		if err != nil {
			problems = append(problems, validation.CustomValidationError{Field: p.field, Message: "must be an integer"})
			continue
		}
		*p.dst = &n
	}

	if problems != nil {
		return problems
	}
	return nil
}

func (r *ListCompaniesRequest) Criteria() model.CompanySearchCriteria {
	return r.criteria
}

type CompanyHandleRequest struct {
	Handle string `param:"handle" validate:"required"`
}

func (r *CompanyHandleRequest) Validate() error {
	return validation.Struct(r)
}

type CreateCompanyRequest struct {
	model.NewCompany
}

func (r *CreateCompanyRequest) Validate() error {
	return validation.Struct(r.NewCompany)
}

// UpdateCompanyRequest is the body of PATCH /companies/:handle.
type UpdateCompanyRequest struct {
	Handle  string                   `param:"handle" json:"-"`
	Changes sqlbuilder.UpdateRequest `json:"-"`
}

func (r *UpdateCompanyRequest) UnmarshalJSON(data []byte) error {
	return r.Changes.UnmarshalJSON(data)
}

func (r *UpdateCompanyRequest) Validate() error {
	return nil
}
