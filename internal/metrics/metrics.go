package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "abim",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "abim",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "abim",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	applicationSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "abim",
			Subsystem: "applications",
			Name:      "submissions_total",
			Help:      "Course application submissions by outcome.",
		},
		[]string{"result"},
	)

	activityEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "abim",
			Subsystem: "activities",
			Name:      "events_total",
			Help:      "Activity feed entries written, by type.",
		},
		[]string{"type"},
	)

	streamClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "abim",
			Subsystem: "activities",
			Name:      "stream_clients",
			Help:      "Currently connected activity stream WebSocket clients.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		applicationSubmissions,
		activityEvents,
		streamClients,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted and RequestFinished bracket one HTTP request.
func RequestStarted() { httpInFlight.Inc() }

func RequestFinished(method, route, status string, seconds float64) {
	httpInFlight.Dec()
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordApplicationSubmission counts a submission outcome: accepted, duplicate,
// invalid or error.
func RecordApplicationSubmission(result string) {
	applicationSubmissions.WithLabelValues(result).Inc()
}

// RecordActivity counts an activity feed entry.
func RecordActivity(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	activityEvents.WithLabelValues(kind).Inc()
}

// StreamClientConnected and StreamClientDisconnected track live feed subscribers.
func StreamClientConnected() { streamClients.Inc() }

func StreamClientDisconnected() { streamClients.Dec() }
