package handler

import (
	"github.com/deppfellow/jobboard/internal/model"
	"github.com/deppfellow/jobboard/internal/server"
	"github.com/deppfellow/jobboard/internal/service"
	"github.com/labstack/echo/v4"
)

type JobHandler struct {
	Handler
	jobs *service.JobService
}

func NewJobHandler(s *server.Server, jobs *service.JobService) *JobHandler {
	return &JobHandler{
		Handler: NewHandler(s),
		jobs:    jobs,
	}
}

type JobsResponse struct {
	Jobs []model.Job `json:"jobs"`
}

type JobResponse struct {
	Job model.Job `json:"job"`
}

type DeletedJobResponse struct {
	Deleted int `json:"deleted"`
}

func (h *JobHandler) ListJobs(c echo.Context, req *ListJobsRequest) (JobsResponse, error) {
	jobs, err := h.jobs.List(c.Request().Context(), req.Criteria())
	if err != nil {
		return JobsResponse{}, err
	}
	return JobsResponse{Jobs: jobs}, nil
}

func (h *JobHandler) GetJob(c echo.Context, req *JobIDRequest) (JobResponse, error) {
	job, err := h.jobs.Get(c.Request().Context(), req.ID)
	if err != nil {
		return JobResponse{}, err
	}
	return JobResponse{Job: job}, nil
}

func (h *JobHandler) CreateJob(c echo.Context, req *CreateJobRequest) (JobResponse, error) {
	job, err := h.jobs.Create(c.Request().Context(), req.NewJob)
	if err != nil {
		return JobResponse{}, err
	}
	return JobResponse{Job: job}, nil
}

func (h *JobHandler) UpdateJob(c echo.Context, req *UpdateJobRequest) (JobResponse, error) {
	job, err := h.jobs.Update(c.Request().Context(), req.ID, req.Changes)
	if err != nil {
		return JobResponse{}, err
	}
	return JobResponse{Job: job}, nil
}

func (h *JobHandler) DeleteJob(c echo.Context, req *JobIDRequest) (DeletedJobResponse, error) {
	deleted, err := h.jobs.Remove(c.Request().Context(), req.ID)
	if err != nil {
		return DeletedJobResponse{}, err
	}
	return DeletedJobResponse{Deleted: deleted}, nil
}
