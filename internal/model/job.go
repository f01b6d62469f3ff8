package model

import "github.com/shopspring/decimal"

// Job is a job posting. CompanyName is not stored on the job; it is filled
// by joining the owning company at read time and is empty otherwise.
type Job struct {
	ID            int                 `json:"id"`
	Title         string              `json:"title"`
	Salary        *int                `json:"salary"`
	Equity        decimal.NullDecimal `json:"equity"`
	CompanyHandle string              `json:"companyHandle"`
	CompanyName   string              `json:"companyName,omitempty"`
}

// NewJob is the payload for creating a job.
type NewJob struct {
	Title         string              `json:"title" validate:"required,min=1"`
	Salary        *int                `json:"salary" validate:"omitempty,min=0"`
	Equity        decimal.NullDecimal `json:"equity"`
	CompanyHandle string              `json:"companyHandle" validate:"required,min=1,max=25"`
}

// JobSearchCriteria filters job listings. Nil fields impose no predicate.
type JobSearchCriteria struct {
	// Title matches case-insensitively anywhere in the job title.
	Title *string `json:"title"`

	// MinSalary keeps jobs paying at least this much.
	MinSalary *int `json:"minSalary" validate:"omitempty,min=0"`

	// HasEquity, when true, keeps jobs with non-zero equity. False is the
	// same as unset.
	HasEquity *bool `json:"hasEquity"`
}
