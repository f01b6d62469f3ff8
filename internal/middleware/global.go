package middleware

import (
	"net/http"

	"github.com/deppfellow/jobboard/internal/errs"
	"github.com/deppfellow/jobboard/internal/server"
	"github.com/deppfellow/jobboard/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	})
}

// RequestLogger writes one access line per request with the request-scoped
// logger, so request id and trace fields come along.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogMethod:  true,
		LogURI:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The error handler has not run yet, so v.Status is stale
			// for failed requests.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			status := v.Status
			if v.Error != nil {
				status = statusOf(v.Error)
			}

			logger := GetLogger(c)
			e := logger.Info()
			switch {
			case status >= http.StatusInternalServerError:
				e = logger.Error().Err(v.Error)
			case status >= http.StatusBadRequest:
				e = logger.Warn()
			}

			e.
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("route", c.Path()).
				Int("status", status).
				Dur("latency", v.Latency).
				Str("ip", c.RealIP()).
				Bool("admin", IsAdmin(c)).
				Msg("request")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler turns any handler error into the JSON error body.
// The log line keeps the underlying error; the body only ever carries an
// *errs.HTTPError.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := toHTTPError(err)

	logger := GetLogger(c)
	var event *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	} else {
		event = logger.Warn()
	}
	event.
		Err(err).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}
	_ = c.JSON(httpErr.Status, httpErr)
}

// toHTTPError classifies err: application errors pass through, echo routing
// errors keep their status, and everything else goes through sqlerr.
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError("Route not found", false, nil)
		}

		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError()
}

// statusOf is the status GlobalErrorHandler will answer err with.
func statusOf(err error) int {
	return toHTTPError(err).Status
}
