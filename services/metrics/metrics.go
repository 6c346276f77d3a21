package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "registro"

// import / export result labels
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics owns a private registry so several servers (and tests) can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	imports          *prometheus.CounterVec
	studentsImported *prometheus.CounterVec
	documents        *prometheus.CounterVec
	requests         *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
	sessionStudents  prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		imports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Total number of roster workbook imports.",
		}, []string{"tier", "result"}),
		studentsImported: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "students_imported_total",
			Help:      "Total number of student rows accepted by imports.",
		}, []string{"tier"}),
		documents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Total number of documents built, by kind and format.",
		}, []string{"kind", "format"}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "code"}),
		requestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP requests.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		sessionStudents: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_students",
			Help:      "Students currently held in the session.",
		}),
	}
}

func (m *Metrics) ImportDone(tier string, students int, err error) {
	if err != nil {
		m.imports.WithLabelValues(tier, ResultError).Inc()
		return
	}
	m.imports.WithLabelValues(tier, ResultOK).Inc()
	m.studentsImported.WithLabelValues(tier).Add(float64(students))
}

func (m *Metrics) DocumentBuilt(kind, format string) {
	m.documents.WithLabelValues(kind, format).Inc()
}

func (m *Metrics) SessionSize(students int) {
	m.sessionStudents.Set(float64(students))
}

func (m *Metrics) RequestDone(method, route, code string, took time.Duration) {
	m.requests.WithLabelValues(method, route, code).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(took.Seconds())
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
