package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/deppfellow/jobboard/internal/middleware"
	"github.com/deppfellow/jobboard/internal/server"
	"github.com/labstack/echo/v4"
)

// Pinger is the one capability the health check needs from the database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	db Pinger
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}
	if s.DB != nil {
		h.db = s.DB.Pool
	}
	return h
}

// CheckHealth reports 200 when the database answers a ping within the
// configured timeout and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]any{}
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	timeout := 5 * time.Second
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		timeout = obs.HealthChecks.Timeout
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
	defer cancel()

	dbStart := time.Now()
	err := errors.New("database not configured")
	if h.db != nil {
		err = h.db.Ping(ctx)
	}

	if err != nil {
		checks["database"] = map[string]any{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
			"error":         err.Error(),
		}
		response["status"] = "unhealthy"

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":       "database",
				"operation":        "health_check",
				"error_type":       "database_unhealthy",
				"response_time_ms": time.Since(dbStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		}

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	checks["database"] = map[string]any{
		"status":        "healthy",
		"response_time": time.Since(dbStart).String(),
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}
