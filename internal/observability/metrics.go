// v0
// internal/observability/metrics.go
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	loopPasses    prometheus.Counter
	slowRefreshes *prometheus.CounterVec
	busErrors     prometheus.Counter
	actuatorState *prometheus.GaugeVec

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		loopPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "station_loop_passes_total",
			Help: "Total sampling loop passes completed.",
		}),
		slowRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "station_slow_refresh_total",
			Help: "Total slow-sensor refresh attempts by outcome.",
		}, []string{"outcome"}),
		busErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "station_bus_errors_total",
			Help: "Total I2C transactions that failed.",
		}),
		actuatorState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "station_actuator_state",
			Help: "Current actuator level (1 on, 0 off).",
		}, []string{"output"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	prometheus.MustRegister(
		m.loopPasses,
		m.slowRefreshes,
		m.busErrors,
		m.actuatorState,
		m.httpRequestsTotal,
		m.httpDuration,
	)

	m.actuatorState.WithLabelValues("led").Set(0)
	m.actuatorState.WithLabelValues("buzzer").Set(0)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		duration := time.Since(start).Seconds()
		if m != nil {
			m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(duration)
		}
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) LoopPass() {
	if m == nil {
		return
	}
	m.loopPasses.Inc()
}

func (m *Metrics) SlowRefresh(outcome string) {
	if m == nil {
		return
	}
	m.slowRefreshes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) BusError() {
	if m == nil {
		return
	}
	m.busErrors.Inc()
}

func (m *Metrics) SetActuators(led, buzzer bool) {
	if m == nil {
		return
	}
	m.actuatorState.WithLabelValues("led").Set(boolGauge(led))
	m.actuatorState.WithLabelValues("buzzer").Set(boolGauge(buzzer))
}

func boolGauge(on bool) float64 {
	if on {
		return 1
	}
	return 0
}
