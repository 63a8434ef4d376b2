package adapters

import (
	"time"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "dream"

type prometheusMetrics struct {
	stageDuration *prometheus.HistogramVec
	pipelineRuns  *prometheus.CounterVec
	pipelineTime  prometheus.Histogram
}

// NewPrometheusMetrics registers the pipeline collectors with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) outbound.MetricsPort {
	m := &prometheusMetrics{
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of each pipeline stage call",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"stage", "outcome"},
		),
		pipelineRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "pipeline_runs_total",
				Help:      "Total pipeline runs by terminal outcome",
			},
			[]string{"outcome"},
		),
		pipelineTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "pipeline_duration_seconds",
				Help:      "End to end duration of a pipeline run",
				Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
			},
		),
	}
	reg.MustRegister(m.stageDuration, m.pipelineRuns, m.pipelineTime)
	return m
}

func (m *prometheusMetrics) ObserveStage(stage domain.StageName, outcome string, elapsed time.Duration) {
	m.stageDuration.WithLabelValues(string(stage), outcome).Observe(elapsed.Seconds())
}

func (m *prometheusMetrics) ObservePipeline(outcome domain.PipelineState, elapsed time.Duration) {
	m.pipelineRuns.WithLabelValues(string(outcome)).Inc()
	m.pipelineTime.Observe(elapsed.Seconds())
}
