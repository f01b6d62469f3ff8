package service

import (
	"context"

	"github.com/deppfellow/jobboard/internal/model"
	"github.com/deppfellow/jobboard/internal/sqlbuilder"
	"github.com/deppfellow/jobboard/internal/validation"
	"github.com/rs/zerolog"
)

// CompanyStore is the persistence the company service needs.
// *repository.CompanyRepository implements it.
type CompanyStore interface {
	FindAll(ctx context.Context, criteria model.CompanySearchCriteria) ([]model.Company, error)
	Get(ctx context.Context, handle string) (model.Company, error)
	Create(ctx context.Context, payload model.NewCompany) (model.Company, error)
	Update(ctx context.Context, handle string, req sqlbuilder.UpdateRequest) (model.Company, error)
	Remove(ctx context.Context, handle string) (string, error)
}

// CompanyUpdateRules checks the values of a company partial update.
var CompanyUpdateRules = validation.FieldRules{
	"name":         validation.String("min=1"),
	"description":  validation.String(""),
	"numEmployees": validation.Nullable(validation.Integer("min=0")),
	"logoUrl":      validation.Nullable(validation.String("url")),
}

type CompanyService struct {
	logger *zerolog.Logger
	store  CompanyStore
}

func NewCompanyService(logger *zerolog.Logger, store CompanyStore) *CompanyService {
	return &CompanyService{logger: logger, store: store}
}

func (s *CompanyService) List(ctx context.Context, criteria model.CompanySearchCriteria) ([]model.Company, error) {
	return s.store.FindAll(ctx, criteria)
}

func (s *CompanyService) Get(ctx context.Context, handle string) (model.Company, error) {
	return s.store.Get(ctx, handle)
}

func (s *CompanyService) Create(ctx context.Context, payload model.NewCompany) (model.Company, error) {
	company, err := s.store.Create(ctx, payload)
	if err != nil {
		return model.Company{}, err
	}

	s.logger.Info().Str("company_handle", company.Handle).Msg("company created")
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, handle string, req sqlbuilder.UpdateRequest) (model.Company, error) {
	req, err := CompanyUpdateRules.Apply(req)
	if err != nil {
		return model.Company{}, err
	}

	company, err := s.store.Update(ctx, handle, req)
	if err != nil {
		return model.Company{}, err
	}

	s.logger.Info().
		Str("company_handle", handle).
		Strs("fields", req.Fields()).
		Msg("company updated")
	return company, nil
}

func (s *CompanyService) Remove(ctx context.Context, handle string) (string, error) {
	deleted, err := s.store.Remove(ctx, handle)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("company_handle", deleted).Msg("company removed")
	return deleted, nil
}
