package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Database metrics
	dbQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"query_type", "table"},
	)

	// Booking metrics
	bookingOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_outcomes_total",
			Help: "Total number of booking operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	// Authentication metrics
	authAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"method", "status"},
	)

	// Notification metrics
	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of notifications delivered to patient inboxes",
		},
		[]string{"header"},
	)
)

// Register registers all metrics with the default Prometheus registry.
// Call once at startup.
func Register() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		dbQueryDuration,
		bookingOutcomesTotal,
		authAttemptsTotal,
		notificationsTotal,
	)
}

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	code := strconv.Itoa(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, code).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBQuery records database query metrics
func RecordDBQuery(queryType, table string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(queryType, table).Observe(duration.Seconds())
}

// RecordBookingOutcome records the outcome of a booking operation.
// operation is "create" or "reschedule"; outcome is "committed",
// "rejected" or "conflict".
func RecordBookingOutcome(operation, outcome string) {
	bookingOutcomesTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordAuthAttempt records authentication attempt metrics
func RecordAuthAttempt(method, status string) {
	authAttemptsTotal.WithLabelValues(method, status).Inc()
}

// RecordNotification records a delivered inbox notification
func RecordNotification(header string) {
	notificationsTotal.WithLabelValues(header).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
