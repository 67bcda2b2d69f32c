// Package metrics provides Prometheus metrics for the studio server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studio_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Assistant metrics
	suggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_suggestions_total",
			Help: "Total suggestions by outcome (conversational, proposed, applied, failed)",
		},
		[]string{"outcome"},
	)

	suggestionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "studio_suggestion_duration_seconds",
			Help:    "Code-suggestion provider latency in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// Tree metrics
	batchFilesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "studio_batch_files_total",
			Help: "Total files written by batch updates",
		},
	)

	fileEditsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "studio_file_edits_total",
			Help: "Total single-file edits",
		},
	)

	// Archive metrics
	archiveImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_archive_imports_total",
			Help: "Total archive imports",
		},
		[]string{"status"},
	)

	archiveExportBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "studio_archive_export_bytes_total",
			Help: "Total bytes of exported archives",
		},
	)

	// Session metrics
	sessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "studio_sessions_active",
			Help: "Number of open studio sessions",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordSuggestion records a resolved suggestion and its latency
func RecordSuggestion(outcome string, duration time.Duration) {
	suggestionsTotal.WithLabelValues(outcome).Inc()
	suggestionDuration.Observe(duration.Seconds())
}

// RecordBatch records the files written by one batch update
func RecordBatch(files int) {
	batchFilesTotal.Add(float64(files))
}

// RecordFileEdit records a single-file edit
func RecordFileEdit() {
	fileEditsTotal.Inc()
}

// RecordArchiveImport records an archive import.
func RecordArchiveImport(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	archiveImportsTotal.WithLabelValues(status).Inc()
}

// RecordArchiveExport records the size of an exported archive
func RecordArchiveExport(bytes int) {
	archiveExportBytes.Add(float64(bytes))
}

// SetSessionsActive sets the number of open sessions.
func SetSessionsActive(count int) {
	sessionsActive.Set(float64(count))
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and durations labelled by chi route
// pattern, keeping label cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		RecordHTTPRequest(r.Method, path, sw.status, time.Since(start))
	})
}
