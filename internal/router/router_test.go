package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/deppfellow/jobboard/internal/config"
	"github.com/deppfellow/jobboard/internal/handler"
	"github.com/deppfellow/jobboard/internal/repository"
	"github.com/deppfellow/jobboard/internal/server"
	"github.com/deppfellow/jobboard/internal/service"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminToken = "test-admin-token-0123456789"

func ptr[T any](v T) *T { return &v }

var (
	jobWithCompanyColumns = []string{"id", "title", "salary", "equity", "company_handle", "company_name"}
	jobRowColumns         = []string{"id", "title", "salary", "equity", "company_handle"}
)

func newTestRouter(t *testing.T) (*echo.Echo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	log := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			Auth:    config.AuthConfig{AdminToken: adminToken},

			Observability: config.DefaultObservabilityConfig(),
		},
		Logger:  &log,
		Metrics: prometheus.NewRegistry(),
	}

	services := &service.Services{
		Job:     service.NewJobService(&log, repository.NewJobRepository(mock)),
		Company: service.NewCompanyService(&log, repository.NewCompanyRepository(mock)),
	}
	return NewRouter(s, handler.NewHandlers(s, services)), mock
}

func do(e *echo.Echo, method, target, body string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if admin {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+adminToken)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListJobsWithFilters(t *testing.T) {
	e, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE salary >= $1 AND equity > 0\nORDER BY j.title, j.id")).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows(jobWithCompanyColumns).
			AddRow(2, "J2", ptr(2), "0.2", "c1", "C1"))

	rec := do(e, http.MethodGet, "/jobs?minSalary=2&hasEquity=true", "", false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.JSONEq(t, `{"jobs":[{"id":2,"title":"J2","salary":2,"equity":"0.2","companyHandle":"c1","companyName":"C1"}]}`,
		rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestListJobsRejectsMalformedQuery(t *testing.T) {
	e, _ := newTestRouter(t)

	for _, target := range []string{
		"/jobs?minSalary=lots",
		"/jobs?hasEquity=maybe",
		"/jobs?minSalary=-1",
	} {
		rec := do(e, http.MethodGet, target, "", false)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetJobNotFound(t *testing.T) {
	e, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(6).
		WillReturnRows(pgxmock.NewRows(jobRowColumns))

	rec := do(e, http.MethodGet, "/jobs/6", "", false)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "JOB_NOT_FOUND", body["code"])
	assert.Equal(t, "No job: 6", body["message"])
}

func TestGetJobOmitsCompanyName(t *testing.T) {
	e, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows(jobRowColumns).
			AddRow(3, "J3", ptr(3), nil, "c1"))

	rec := do(e, http.MethodGet, "/jobs/3", "", false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"job":{"id":3,"title":"J3","salary":3,"equity":null,"companyHandle":"c1"}}`, rec.Body.String())
}

func TestMutatingRoutesRequireAdmin(t *testing.T) {
	e, _ := newTestRouter(t)

	for _, tc := range []struct{ method, target, body string }{
		{http.MethodPost, "/jobs", `{"title":"New","companyHandle":"c1"}`},
		{http.MethodPatch, "/jobs/1", `{"title":"x"}`},
		{http.MethodDelete, "/jobs/1", ""},
		{http.MethodPost, "/companies", `{"handle":"c9","name":"C9","description":"d"}`},
		{http.MethodPatch, "/companies/c1", `{"name":"x"}`},
		{http.MethodDelete, "/companies/c1", ""},
	} {
		rec := do(e, tc.method, tc.target, tc.body, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.method+" "+tc.target)
	}

	req := httptest.NewRequest(http.MethodDelete, "/jobs/1", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer wrong-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPatchJobKeepsBodyOrder(t *testing.T) {
	e, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE jobs SET "salary"=$1, "title"=$2
WHERE id = $3`)).
		WithArgs(500, "J-new", 1).
		WillReturnRows(pgxmock.NewRows(jobRowColumns).
			AddRow(1, "J-new", ptr(500), "0.1", "c1"))

	rec := do(e, http.MethodPatch, "/jobs/1", `{"salary":500,"title":"J-new"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.JSONEq(t, `{"job":{"id":1,"title":"J-new","salary":500,"equity":"0.1","companyHandle":"c1"}}`,
		rec.Body.String())
}

func TestPatchJobRejected(t *testing.T) {
	e, _ := newTestRouter(t)

	for _, body := range []string{
		`{"companyHandle":"c2"}`,
		`{"id":4}`,
		`{"title":5}`,
		`{"salary":"lots"}`,
		`{"equity":"2"}`,
		`{}`,
		`{"title":`,
	} {
		rec := do(e, http.MethodPatch, "/jobs/1", body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestDeleteJob(t *testing.T) {
	e, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM jobs WHERE id = $1 RETURNING id")).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM jobs WHERE id = $1 RETURNING id")).
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	rec := do(e, http.MethodDelete, "/jobs/1", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":1}`, rec.Body.String())

	rec = do(e, http.MethodDelete, "/jobs/7", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateJob(t *testing.T) {
	e, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO jobs")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "c1").
		WillReturnRows(pgxmock.NewRows(jobRowColumns).
			AddRow(9, "New", ptr(150), "0.1", "c1"))

	rec := do(e, http.MethodPost, "/jobs", `{"companyHandle":"c1","title":"New","salary":150,"equity":"0.1"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"job":{"id":9,"title":"New","salary":150,"equity":"0.1","companyHandle":"c1"}}`,
		rec.Body.String())
}

func TestCreateJobValidation(t *testing.T) {
	e, _ := newTestRouter(t)

	for _, body := range []string{
		`{"title":"New","salary":150,"equity":"0"}`,
		`{"companyHandle":"c1","title":5}`,
		`{"companyHandle":"c1","title":"New","equity":"1.2"}`,
		`{"companyHandle":"c1","title":"New","salary":-3}`,
	} {
		rec := do(e, http.MethodPost, "/jobs", body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestCreateJobUnknownCompany(t *testing.T) {
	e, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO jobs")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "nope").
		WillReturnError(&pgconn.PgError{
			Code:           "23503",
			Severity:       "ERROR",
			TableName:      "jobs",
			ColumnName:     "company_handle",
			ConstraintName: "jobs_company_handle_fkey",
			Message:        `insert or update on table "jobs" violates foreign key constraint "jobs_company_handle_fkey"`,
		})

	rec := do(e, http.MethodPost, "/jobs", `{"companyHandle":"nope","title":"New"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestStoreFailureIsInternalError(t *testing.T) {
	e, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

	rec := do(e, http.MethodGet, "/jobs", "", false)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestUnknownRoute(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/nowhere", "", false)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode(t, rec)["message"])
}

func TestUpdateCompany(t *testing.T) {
	e, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE companies SET "num_employees"=$1
WHERE handle = $2`)).
		WithArgs(10, "c1").
		WillReturnRows(pgxmock.NewRows([]string{"handle", "name", "description", "num_employees", "logo_url"}).
			AddRow("c1", "C1", "Desc1", ptr(10), nil))

	rec := do(e, http.MethodPatch, "/companies/c1", `{"numEmployees":10}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"company":{"handle":"c1","name":"C1","description":"Desc1","numEmployees":10,"logoUrl":null}}`,
		rec.Body.String())

	rec = do(e, http.MethodPatch, "/companies/c1", `{"handle":"c2"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/metrics", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusWithoutDatabase(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/status", "", false)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", decode(t, rec)["status"])
}
