package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PipelineMetrics struct {
	registry *prometheus.Registry

	documentsTotal  *prometheus.CounterVec
	stageDuration   *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	summariesTotal  *prometheus.CounterVec
	diagnosticsSeen prometheus.Counter
}

func NewPipelineMetrics(service string) *PipelineMetrics {
	registry := prometheus.NewRegistry()

	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medscrub",
			Subsystem: "pipeline",
			Name:      "documents_total",
			Help:      "Total processed documents by format and outcome.",
		},
		[]string{"service", "format", "outcome"},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "medscrub",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Per-stage processing duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "stage"},
	)
	inFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "medscrub",
			Subsystem: "pipeline",
			Name:      "documents_in_flight",
			Help:      "Number of documents currently being processed.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	summariesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medscrub",
			Subsystem: "pipeline",
			Name:      "summaries_total",
			Help:      "Produced summaries by tier.",
		},
		[]string{"service", "tier"},
	)
	diagnosticsSeen := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "medscrub",
			Subsystem: "pipeline",
			Name:      "degradations_total",
			Help:      "Diagnostics recorded across all processed documents.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(documentsTotal, stageDuration, inFlight, summariesTotal, diagnosticsSeen)

	return &PipelineMetrics{
		registry:        registry,
		documentsTotal:  documentsTotal,
		stageDuration:   stageDuration,
		inFlight:        inFlight,
		summariesTotal:  summariesTotal,
		diagnosticsSeen: diagnosticsSeen,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) StartDocument() {
	m.inFlight.Inc()
}

func (m *PipelineMetrics) FinishDocument(service, format string, err error) {
	m.inFlight.Dec()

	outcome := "done"
	if err != nil {
		outcome = "failed"
	}
	m.documentsTotal.WithLabelValues(service, format, outcome).Inc()
}

func (m *PipelineMetrics) ObserveStage(service, stage string, duration time.Duration) {
	m.stageDuration.WithLabelValues(service, stage).Observe(duration.Seconds())
}

func (m *PipelineMetrics) CountSummary(service, tier string) {
	m.summariesTotal.WithLabelValues(service, tier).Inc()
}

func (m *PipelineMetrics) CountDiagnostics(n int) {
	if n <= 0 {
		return
	}
	m.diagnosticsSeen.Add(float64(n))
}
