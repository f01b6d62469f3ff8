// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/jobboard/internal/handler"
	"github.com/deppfellow/jobboard/internal/middleware"
	"github.com/deppfellow/jobboard/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance serving the whole API.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id must exist before the context logger
	// is built, and the New Relic transaction before it is enhanced.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)
	registerJobRoutes(router, h, middlewares.Auth)
	registerCompanyRoutes(router, h, middlewares.Auth)

	return router
}

func registerJobRoutes(r *echo.Echo, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	jobs := r.Group("/jobs")

	jobs.GET("", handler.Handle(h.Job.Handler, h.Job.ListJobs, http.StatusOK, &handler.ListJobsRequest{}))
	jobs.GET("/:id", handler.Handle(h.Job.Handler, h.Job.GetJob, http.StatusOK, &handler.JobIDRequest{}))

	jobs.POST("", handler.Handle(h.Job.Handler, h.Job.CreateJob, http.StatusCreated, &handler.CreateJobRequest{}), auth.RequireAdmin)
	jobs.PATCH("/:id", handler.Handle(h.Job.Handler, h.Job.UpdateJob, http.StatusOK, &handler.UpdateJobRequest{}), auth.RequireAdmin)
	jobs.DELETE("/:id", handler.Handle(h.Job.Handler, h.Job.DeleteJob, http.StatusOK, &handler.JobIDRequest{}), auth.RequireAdmin)
}

func registerCompanyRoutes(r *echo.Echo, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	companies := r.Group("/companies")

	companies.GET("", handler.Handle(h.Company.Handler, h.Company.ListCompanies, http.StatusOK, &handler.ListCompaniesRequest{}))
	companies.GET("/:handle", handler.Handle(h.Company.Handler, h.Company.GetCompany, http.StatusOK, &handler.CompanyHandleRequest{}))

	companies.POST("", handler.Handle(h.Company.Handler, h.Company.CreateCompany, http.StatusCreated, &handler.CreateCompanyRequest{}), auth.RequireAdmin)
	companies.PATCH("/:handle", handler.Handle(h.Company.Handler, h.Company.UpdateCompany, http.StatusOK, &handler.UpdateCompanyRequest{}), auth.RequireAdmin)
	companies.DELETE("/:handle", handler.Handle(h.Company.Handler, h.Company.DeleteCompany, http.StatusOK, &handler.CompanyHandleRequest{}), auth.RequireAdmin)
}
