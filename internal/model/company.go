package model

// Company owns job postings and is addressed by its handle.
type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`

	// Jobs is only populated by a single-company lookup.
	Jobs []Job `json:"jobs,omitempty"`
}

// NewCompany is the payload for creating a company.
type NewCompany struct {
	Handle       string  `json:"handle" validate:"required,min=1,max=25,lowercase"`
	Name         string  `json:"name" validate:"required,min=1"`
	Description  string  `json:"description" validate:"required"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

// CompanySearchCriteria filters company listings. Nil fields impose no predicate.
type CompanySearchCriteria struct {
	Name         *string `json:"name"`
	MinEmployees *int    `json:"minEmployees" validate:"omitempty,min=0"`
	MaxEmployees *int    `json:"maxEmployees" validate:"omitempty,min=0"`
}
