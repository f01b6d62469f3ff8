package router

import (
	"github.com/deppfellow/jobboard/internal/handler"
	"github.com/deppfellow/jobboard/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerSystemRoutes registers the endpoints that are not business logic.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	if s.Metrics != nil {
		r.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Metrics, promhttp.HandlerOpts{})))
	}
}
