package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the summarizer service. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Request latency by chi route pattern, method and status
	RequestDuration *prometheus.HistogramVec

	// Model outcomes: parsed, fallback or error
	SummaryOutcomes *prometheus.CounterVec

	ExtractedChars  prometheus.Histogram
	ReportsRendered prometheus.Counter
}

// New registers all metrics on a private registry along with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "energy_audit_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route, method and status",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"route", "method", "status"}),

		SummaryOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "energy_audit_summaries_total",
			Help: "Total summarization attempts by outcome",
		}, []string{"outcome"}),

		ExtractedChars: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "energy_audit_extracted_chars",
			Help:    "Length in characters of text extracted from uploaded reports",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 10),
		}),

		ReportsRendered: factory.NewCounter(prometheus.CounterOpts{
			Name: "energy_audit_reports_rendered_total",
			Help: "Total PDF summary reports rendered",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(d.Seconds())
	}
}

// IncrementSummaryOutcome records the outcome of a summarization attempt.
func (m *Metrics) IncrementSummaryOutcome(outcome string) {
	if m != nil {
		m.SummaryOutcomes.WithLabelValues(outcome).Inc()
	}
}

// ObserveExtractedChars records the size of an extracted report.
func (m *Metrics) ObserveExtractedChars(n int) {
	if m != nil {
		m.ExtractedChars.Observe(float64(n))
	}
}

// IncrementReportsRendered records one rendered PDF report.
func (m *Metrics) IncrementReportsRendered() {
	if m != nil {
		m.ReportsRendered.Inc()
	}
}
