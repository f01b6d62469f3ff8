package handler

import (
	"github.com/deppfellow/jobboard/internal/server"
	"github.com/deppfellow/jobboard/internal/service"
)

// Handlers groups every HTTP handler so the router gets a single object.
type Handlers struct {
	Health  *HealthHandler
	Job     *JobHandler
	Company *CompanyHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Job:     NewJobHandler(s, services.Job),
		Company: NewCompanyHandler(s, services.Company),
	}
}
