package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/mathwheel/internal/wheel"
)

// Metrics holds the API's Prometheus collectors on a private registry.
type Metrics struct {
	registry  *prometheus.Registry
	spins     *prometheus.CounterVec
	questions *prometheus.CounterVec
	answers   *prometheus.CounterVec
	requests  *prometheus.HistogramVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		spins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mathwheel",
			Name:      "spins_total",
			Help:      "Wheel spins by landed operation.",
		}, []string{"operation"}),
		questions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mathwheel",
			Name:      "questions_total",
			Help:      "Questions generated by operation.",
		}, []string{"operation"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mathwheel",
			Name:      "answers_total",
			Help:      "Answers by operation and result.",
		}, []string{"operation", "result"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mathwheel",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(
		m.spins, m.questions, m.answers, m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) spin(op wheel.Operation) {
	m.spins.WithLabelValues(op.Name()).Inc()
}

func (m *Metrics) question(op wheel.Operation) {
	m.questions.WithLabelValues(op.Name()).Inc()
}

func (m *Metrics) answer(op wheel.Operation, correct bool) {
	result := "wrong"
	if correct {
		result = "correct"
	}
	m.answers.WithLabelValues(op.Name(), result).Inc()
}

func (m *Metrics) observeRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
