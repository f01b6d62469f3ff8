package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/jobboard/internal/database"
	"github.com/deppfellow/jobboard/internal/errs"
	"github.com/deppfellow/jobboard/internal/model"
	"github.com/deppfellow/jobboard/internal/sqlbuilder"
	"github.com/deppfellow/jobboard/internal/validation"
)

// CompanyFields maps company fields to the columns of the companies table.
var CompanyFields = sqlbuilder.MustFieldMap(
	[]string{"handle", "name", "description", "num_employees", "logo_url"},
	map[string]string{
		"numEmployees": "num_employees",
		"logoUrl":      "logo_url",
	},
)

const companyColumns = `handle, name, description, num_employees, logo_url`

// CompanySearchClause renders the WHERE body for criteria, in the order
// name, minEmployees, maxEmployees.
func CompanySearchClause(criteria model.CompanySearchCriteria) (sqlbuilder.Clause, error) {
	if err := validation.Struct(criteria); err != nil {
		return sqlbuilder.Clause{}, err
	}
	if criteria.MinEmployees != nil && criteria.MaxEmployees != nil &&
		*criteria.MinEmployees > *criteria.MaxEmployees {
		return sqlbuilder.Clause{}, errs.NewBadRequestError(
			"Min employees cannot be greater than max", true, nil,
			[]errs.FieldError{{Field: "minEmployees", Error: "must not exceed maxEmployees"}})
	}

	var where sqlbuilder.Predicates
	if criteria.Name != nil {
		if name := strings.TrimSpace(*criteria.Name); name != "" {
			where.Add("name ILIKE ", likePattern(name))
		}
	}
	if criteria.MinEmployees != nil {
		where.Add("num_employees >= ", *criteria.MinEmployees)
	}
	if criteria.MaxEmployees != nil {
		where.Add("num_employees <= ", *criteria.MaxEmployees)
	}

	return where.Render(" AND "), nil
}

// CompanyRepository reads and writes companies.
type CompanyRepository struct {
	db database.Querier
}

func NewCompanyRepository(db database.Querier) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// FindAll lists the companies matching criteria ordered by name.
func (r *CompanyRepository) FindAll(ctx context.Context, criteria model.CompanySearchCriteria) ([]model.Company, error) {
	where, err := CompanySearchClause(criteria)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + companyColumns + "\nFROM companies"
	if !where.Empty() {
		query += "\nWHERE " + where.SQL
	}
	query += "\nORDER BY name"

	rows, err := r.db.Query(ctx, query, where.Args...)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	companies := []model.Company{}
	for rows.Next() {
		var company model.Company
		if err := rows.Scan(&company.Handle, &company.Name, &company.Description, &company.NumEmployees, &company.LogoURL); err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}

	return companies, nil
}

// Get returns a company together with its jobs ordered by title.
func (r *CompanyRepository) Get(ctx context.Context, handle string) (model.Company, error) {
	var company model.Company
	err := r.db.QueryRow(ctx, "SELECT "+companyColumns+"\nFROM companies\nWHERE handle = $1", handle).
		Scan(&company.Handle, &company.Name, &company.Description, &company.NumEmployees, &company.LogoURL)
	if err != nil {
		return model.Company{}, companyNotFound(err, "getting company", handle)
	}

	rows, err := r.db.Query(ctx, "SELECT "+jobColumns+"\nFROM jobs\nWHERE company_handle = $1\nORDER BY title, id", handle)
	if err != nil {
		return model.Company{}, fmt.Errorf("listing company jobs: %w", err)
	}
	defer rows.Close()

	company.Jobs = []model.Job{}
	for rows.Next() {
		var job model.Job
		if err := rows.Scan(&job.ID, &job.Title, &job.Salary, &job.Equity, &job.CompanyHandle); err != nil {
			return model.Company{}, fmt.Errorf("scanning job: %w", err)
		}
		company.Jobs = append(company.Jobs, job)
	}
	if err := rows.Err(); err != nil {
		return model.Company{}, fmt.Errorf("listing company jobs: %w", err)
	}

	return company, nil
}

// Create inserts a company. A taken handle or name surfaces as the store's
// unique violation.
func (r *CompanyRepository) Create(ctx context.Context, payload model.NewCompany) (model.Company, error) {
	var company model.Company
	err := r.db.QueryRow(ctx,
		`INSERT INTO companies (handle, name, description, num_employees, logo_url)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+companyColumns,
		payload.Handle, payload.Name, payload.Description, payload.NumEmployees, payload.LogoURL,
	).Scan(&company.Handle, &company.Name, &company.Description, &company.NumEmployees, &company.LogoURL)
	if err != nil {
		return model.Company{}, fmt.Errorf("creating company: %w", err)
	}
	return company, nil
}

// Update applies a partial update to the company. The handle cannot be changed.
func (r *CompanyRepository) Update(ctx context.Context, handle string, req sqlbuilder.UpdateRequest) (model.Company, error) {
	if err := checkUpdatable(req, CompanyFields, "handle"); err != nil {
		return model.Company{}, err
	}

	set, err := sqlbuilder.PartialUpdate(req, CompanyFields)
	if err != nil {
		return model.Company{}, err
	}

	query := "UPDATE companies SET " + set.SQL +
		"\nWHERE handle = " + set.NextPlaceholder() +
		"\nRETURNING " + companyColumns
	args := append(set.Args, handle)

	var company model.Company
	err = r.db.QueryRow(ctx, query, args...).
		Scan(&company.Handle, &company.Name, &company.Description, &company.NumEmployees, &company.LogoURL)
	if err != nil {
		return model.Company{}, companyNotFound(err, "updating company", handle)
	}
	return company, nil
}

// Remove deletes the company, and through the foreign key its jobs, and
// returns the deleted handle.
func (r *CompanyRepository) Remove(ctx context.Context, handle string) (string, error) {
	var deleted string
	err := r.db.QueryRow(ctx, `DELETE FROM companies WHERE handle = $1 RETURNING handle`, handle).Scan(&deleted)
	if err != nil {
		return "", companyNotFound(err, "removing company", handle)
	}
	return deleted, nil
}

func companyNotFound(err error, op, handle string) error {
	return notFound(err, op, fmt.Sprintf("No company: %s", handle), "COMPANY_NOT_FOUND")
}
