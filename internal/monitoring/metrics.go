package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Generation metrics
	tearsheetsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tearsheet_generated_total",
			Help: "Total number of tearsheets generated",
		},
	)

	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tearsheet_stage_duration_seconds",
			Help:    "Duration of tearsheet pipeline stages",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	// Error metrics
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tearsheet_errors_total",
			Help: "Total number of errors by category",
		},
		[]string{"category"},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(tearsheetsTotal)
	prometheus.MustRegister(stageDuration)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles the Prometheus metrics endpoint, served during long
// multi-report batch runs
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordTearsheet records a completed tearsheet generation
func RecordTearsheet() {
	tearsheetsTotal.Inc()
}

// ObserveStage records the duration of a pipeline stage
func ObserveStage(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordError records an error metric
func RecordError(category string) {
	if category == "" {
		category = "UNKNOWN"
	}
	errorsTotal.WithLabelValues(category).Inc()
}
