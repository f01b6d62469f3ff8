package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/jobboard/internal/database"
	"github.com/deppfellow/jobboard/internal/model"
	"github.com/deppfellow/jobboard/internal/sqlbuilder"
	"github.com/deppfellow/jobboard/internal/validation"
)

// JobFields maps job fields to the columns of the jobs table.
var JobFields = sqlbuilder.MustFieldMap(
	[]string{"id", "title", "salary", "equity", "company_handle"},
	map[string]string{"companyHandle": "company_handle"},
)

// Fields a job update may never touch.
var jobIdentityFields = []string{"id", "companyHandle"}

const (
	jobColumns = `id, title, salary, equity, company_handle`

	selectJobsWithCompany = `SELECT j.id, j.title, j.salary, j.equity, j.company_handle, c.name AS company_name
FROM jobs j
JOIN companies c ON c.handle = j.company_handle`

	jobsOrder = `ORDER BY j.title, j.id`
)

// JobSearchClause renders the WHERE body for criteria. Predicates always
// appear in the order title, minSalary, hasEquity; hasEquity binds nothing.
//
//	{title: "net", minSalary: 50000, hasEquity: true}
//	=> "title ILIKE $1 AND salary >= $2 AND equity > 0", ["%net%", 50000]
func JobSearchClause(criteria model.JobSearchCriteria) (sqlbuilder.Clause, error) {
	if err := validation.Struct(criteria); err != nil {
		return sqlbuilder.Clause{}, err
	}

	var where sqlbuilder.Predicates
	if criteria.Title != nil {
		if title := strings.TrimSpace(*criteria.Title); title != "" {
			where.Add("title ILIKE ", likePattern(title))
		}
	}
	if criteria.MinSalary != nil {
		where.Add("salary >= ", *criteria.MinSalary)
	}
	if criteria.HasEquity != nil && *criteria.HasEquity {
		where.AddRaw("equity > 0")
	}

	return where.Render(" AND "), nil
}

// JobRepository reads and writes job postings.
type JobRepository struct {
	db database.Querier
}

func NewJobRepository(db database.Querier) *JobRepository {
	return &JobRepository{db: db}
}

// FindAll lists the jobs matching criteria, each with its company's name,
// ordered by title.
func (r *JobRepository) FindAll(ctx context.Context, criteria model.JobSearchCriteria) ([]model.Job, error) {
	where, err := JobSearchClause(criteria)
	if err != nil {
		return nil, err
	}

	query := selectJobsWithCompany
	if !where.Empty() {
		query += "\nWHERE " + where.SQL
	}
	query += "\n" + jobsOrder

	rows, err := r.db.Query(ctx, query, where.Args...)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		var job model.Job
		if err := rows.Scan(&job.ID, &job.Title, &job.Salary, &job.Equity, &job.CompanyHandle, &job.CompanyName); err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}

	return jobs, nil
}

// Get returns one job. Like Create and Update it leaves CompanyName empty;
// only listings join the company.
func (r *JobRepository) Get(ctx context.Context, id int) (model.Job, error) {
	var job model.Job
	err := r.db.QueryRow(ctx, `SELECT `+jobColumns+`
FROM jobs
WHERE id = $1`, id).
		Scan(&job.ID, &job.Title, &job.Salary, &job.Equity, &job.CompanyHandle)
	if err != nil {
		return model.Job{}, jobNotFound(err, "getting job", id)
	}
	return job, nil
}

// Create inserts a job and returns it without the company name.
func (r *JobRepository) Create(ctx context.Context, payload model.NewJob) (model.Job, error) {
	var job model.Job
	err := r.db.QueryRow(ctx,
		`INSERT INTO jobs (title, salary, equity, company_handle)
VALUES ($1, $2, $3, $4)
RETURNING `+jobColumns,
		payload.Title, payload.Salary, payload.Equity, payload.CompanyHandle,
	).Scan(&job.ID, &job.Title, &job.Salary, &job.Equity, &job.CompanyHandle)
	if err != nil {
		return model.Job{}, fmt.Errorf("creating job: %w", err)
	}
	return job, nil
}

// Update applies a partial update to job id and returns the updated row.
// The id and the owning company cannot be changed.
func (r *JobRepository) Update(ctx context.Context, id int, req sqlbuilder.UpdateRequest) (model.Job, error) {
	if err := checkUpdatable(req, JobFields, jobIdentityFields...); err != nil {
		return model.Job{}, err
	}

	set, err := sqlbuilder.PartialUpdate(req, JobFields)
	if err != nil {
		return model.Job{}, err
	}

	query := "UPDATE jobs SET " + set.SQL +
		"\nWHERE id = " + set.NextPlaceholder() +
		"\nRETURNING " + jobColumns
	args := append(set.Args, id)

	var job model.Job
	err = r.db.QueryRow(ctx, query, args...).
		Scan(&job.ID, &job.Title, &job.Salary, &job.Equity, &job.CompanyHandle)
	if err != nil {
		return model.Job{}, jobNotFound(err, "updating job", id)
	}
	return job, nil
}

// Remove deletes job id and returns the deleted id.
func (r *JobRepository) Remove(ctx context.Context, id int) (int, error) {
	var deleted int
	err := r.db.QueryRow(ctx, `DELETE FROM jobs WHERE id = $1 RETURNING id`, id).Scan(&deleted)
	if err != nil {
		return 0, jobNotFound(err, "removing job", id)
	}
	return deleted, nil
}

func jobNotFound(err error, op string, id int) error {
	return notFound(err, op, fmt.Sprintf("No job: %d", id), "JOB_NOT_FOUND")
}
