package service

import (
	"context"

	"github.com/deppfellow/jobboard/internal/model"
	"github.com/deppfellow/jobboard/internal/sqlbuilder"
	"github.com/deppfellow/jobboard/internal/validation"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// JobStore is the persistence the job service needs.
// *repository.JobRepository implements it.
type JobStore interface {
	FindAll(ctx context.Context, criteria model.JobSearchCriteria) ([]model.Job, error)
	Get(ctx context.Context, id int) (model.Job, error)
	Create(ctx context.Context, payload model.NewJob) (model.Job, error)
	Update(ctx context.Context, id int, req sqlbuilder.UpdateRequest) (model.Job, error)
	Remove(ctx context.Context, id int) (int, error)
}

// JobUpdateRules checks the values of a job partial update.
var JobUpdateRules = validation.FieldRules{
	"title":  validation.String("min=1"),
	"salary": validation.Nullable(validation.Integer("min=0")),
	"equity": validation.Nullable(validation.Decimal(decimal.Zero, decimal.NewFromInt(1))),
}

type JobService struct {
	logger *zerolog.Logger
	store  JobStore
}

func NewJobService(logger *zerolog.Logger, store JobStore) *JobService {
	return &JobService{logger: logger, store: store}
}

func (s *JobService) List(ctx context.Context, criteria model.JobSearchCriteria) ([]model.Job, error) {
	return s.store.FindAll(ctx, criteria)
}

func (s *JobService) Get(ctx context.Context, id int) (model.Job, error) {
	return s.store.Get(ctx, id)
}

func (s *JobService) Create(ctx context.Context, payload model.NewJob) (model.Job, error) {
	job, err := s.store.Create(ctx, payload)
	if err != nil {
		return model.Job{}, err
	}

	s.logger.Info().
		Int("job_id", job.ID).
		Str("company_handle", job.CompanyHandle).
		Msg("job created")
	return job, nil
}

// Update normalizes the values of req and applies it to job id.
func (s *JobService) Update(ctx context.Context, id int, req sqlbuilder.UpdateRequest) (model.Job, error) {
	req, err := JobUpdateRules.Apply(req)
	if err != nil {
		return model.Job{}, err
	}

	job, err := s.store.Update(ctx, id, req)
	if err != nil {
		return model.Job{}, err
	}

	s.logger.Info().
		Int("job_id", id).
		Strs("fields", req.Fields()).
		Msg("job updated")
	return job, nil
}

func (s *JobService) Remove(ctx context.Context, id int) (int, error) {
	deleted, err := s.store.Remove(ctx, id)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int("job_id", deleted).Msg("job removed")
	return deleted, nil
}
