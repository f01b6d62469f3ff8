package database

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

var (
	queryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobboard_db_query_duration_seconds",
			Help:    "Duration of SQL statements by statement kind and outcome",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16),
		},
		[]string{"statement", "status"},
	)
	slowQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_db_slow_queries_total",
			Help: "SQL statements slower than the configured slow query threshold",
		},
		[]string{"statement"},
	)
)

// MustRegisterMetrics registers the query metrics on registry.
func MustRegisterMetrics(registry *prometheus.Registry) {
	registry.MustRegister(queryDuration, slowQueries)
}

type queryStartKey struct{}

type queryStart struct {
	at  time.Time
	sql string
}

// QueryTracer times every statement into the query metrics and logs the
// ones slower than its threshold. A zero threshold disables slow-query logs.
type QueryTracer struct {
	log  *zerolog.Logger
	slow time.Duration
}

// NewQueryTracer returns a QueryTracer logging slow statements to log.
func NewQueryTracer(log *zerolog.Logger, slow time.Duration) *QueryTracer {
	return &QueryTracer{log: log, slow: slow}
}

func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), sql: data.SQL})
}

func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := time.Since(start.at)
	kind := statementKind(start.sql)

	status := "ok"
	if data.Err != nil {
		status = "error"
	}
	queryDuration.WithLabelValues(kind, status).Observe(elapsed.Seconds())

	if t.slow > 0 && elapsed >= t.slow {
		slowQueries.WithLabelValues(kind).Inc()
		t.log.Warn().
			Str("statement", kind).
			Dur("duration", elapsed).
			Str("sql", start.sql).
			Msg("slow query")
	}
}

// statementKind returns the lower-cased leading keyword: "select", "update", ...
func statementKind(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
