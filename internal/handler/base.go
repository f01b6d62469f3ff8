package handler

import (
	"reflect"
	"time"

	"github.com/deppfellow/jobboard/internal/middleware"
	"github.com/deppfellow/jobboard/internal/server"
	"github.com/deppfellow/jobboard/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the shared application dependencies of concrete handlers.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives the bound and validated
// request and returns the response body.
//
// Req is a pointer type, e.g. *GetJobRequest, since binding mutates it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler writes a successful result and names it for logs and traces.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result any)
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	// http.status_code is set by EnhanceTracing.
}

// handleRequest is the shared pipeline of every typed endpoint: bind and
// validate, run the handler, write the response. Each phase is logged and
// recorded on the New Relic transaction as <phase>.status / <phase>.duration_ms.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	validationStart := time.Now()
	err := validation.BindAndValidate(c, req)
	validationDuration := time.Since(validationStart)
	recordPhase(txn, "validation", validationDuration, err)
	if err != nil {
		logger.Debug().Err(err).Dur("validation_duration", validationDuration).Msg("request rejected")
		return err
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)
	recordPhase(txn, "handler", handlerDuration, err)
	if err != nil {
		logger.Debug().Err(err).Dur("handler_duration", handlerDuration).Msg("handler failed")
		return err
	}

	if txn != nil {
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request handled")

	return responseHandler.Handle(c, result)
}

// recordPhase sets the phase attributes on txn, which may be nil. Errors are
// noticed by EnhanceTracing, which sees them after the error funnel's
// classification.
func recordPhase(txn *newrelic.Transaction, phase string, d time.Duration, err error) {
	if txn == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	txn.AddAttribute(phase+".status", status)
	txn.AddAttribute(phase+".duration_ms", d.Milliseconds())
}

// Handle wraps a typed endpoint into an echo.HandlerFunc:
//
//	e.POST("/jobs", handler.Handle(h.Handler, h.CreateJob, http.StatusCreated, &CreateJobRequest{}))
//
// req only fixes the request type; every request binds into a fresh value.
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	req Req,
) echo.HandlerFunc {
	reqType := reflect.TypeOf(req).Elem()

	return func(c echo.Context) error {
		fresh := reflect.New(reqType).Interface().(Req)

		return handleRequest(c, fresh, func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}
