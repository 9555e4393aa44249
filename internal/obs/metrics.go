// Package obs holds the Prometheus collectors for the HTTP surface and the
// storage tiers.
package obs

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	configWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_config_writes_total",
			Help: "Site configuration writes by backend.",
		},
		[]string{"backend"},
	)

	configSelfHeals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_config_self_heal_total",
			Help: "Times the default configuration was persisted on read.",
		},
		[]string{"reason"},
	)

	contentSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_saves_total",
			Help: "Content entry saves by type, backend and operation.",
		},
		[]string{"type", "backend", "op"},
	)
)

var initOnce sync.Once

// Init registers all collectors in the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			httpInFlight, httpRequestsTotal, httpRequestDuration,
			configWrites, configSelfHeals, contentSaves,
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordConfigWrite counts a persisted configuration document.
func RecordConfigWrite(backend string) {
	configWrites.WithLabelValues(backend).Inc()
}

// RecordSelfHeal counts a read that fell back to defaults and wrote them.
// reason is "absent" or "corrupt".
func RecordSelfHeal(reason string) {
	configSelfHeals.WithLabelValues(reason).Inc()
}

// RecordContentSave counts a content create or update.
func RecordContentSave(contentType, backend, op string) {
	contentSaves.WithLabelValues(contentType, backend, op).Inc()
}

// Instrument records rate, latency and in-flight count per route pattern.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		defer httpInFlight.Dec()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		// ServeMux fills in Pattern while routing; raw paths would explode cardinality
		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
