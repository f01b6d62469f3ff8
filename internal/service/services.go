package service

import (
	"github.com/deppfellow/jobboard/internal/repository"
	"github.com/deppfellow/jobboard/internal/server"
)

type Services struct {
	Job     *JobService
	Company *CompanyService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Job:     NewJobService(s.Logger, repos.Job),
		Company: NewCompanyService(s.Logger, repos.Company),
	}
}
