package repository

import (
	"github.com/deppfellow/jobboard/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Job     *JobRepository
	Company *CompanyRepository
}

// NewRepositories builds every repository on the server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Job:     NewJobRepository(s.DB.Pool),
		Company: NewCompanyRepository(s.DB.Pool),
	}
}
