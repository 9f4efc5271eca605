package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics serves the Prometheus registry and records per-endpoint request
// metrics. Calculation metrics live in the sequence package.
type Metrics struct {
	handler http.Handler
}

var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bigcalc_http_active_requests",
		Help: "Current number of in-flight HTTP requests",
	})
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bigcalc_http_requests_total",
		Help: "HTTP requests by endpoint and status code",
	}, []string{"endpoint", "code"})
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bigcalc_http_request_duration_seconds",
		Help:    "HTTP request latency by endpoint",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"endpoint"})
)

func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

// Observe records a finished request.
func (m *Metrics) Observe(endpoint string, code int, d time.Duration) {
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeRequests.Inc()
		defer activeRequests.Dec()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.Observe(endpoint, rec.status, time.Since(start))
	}
}
