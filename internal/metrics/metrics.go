package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "barad_dur"

// Metric label values for aggregation status.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid and
// records nothing, so components can be built without a registry.
type Metrics struct {
	reportsReceived     prometheus.Counter
	reportsPersisted    prometheus.Counter
	aggregationRuns     *prometheus.CounterVec
	aggregationDuration *prometheus.HistogramVec
	reg                 prometheus.Registerer
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		reportsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_received_total",
			Help:      "Total number of usage reports accepted by the push endpoint.",
		}),
		reportsPersisted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_persisted_total",
			Help:      "Total number of usage reports written to the report store.",
		}),
		aggregationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregation_runs_total",
			Help:      "Total number of per-day aggregation passes.",
		}, []string{"scope", "status"}),
		aggregationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_duration_seconds",
			Help:      "Duration of per-day aggregation passes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"scope"}),
		reg: reg,
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{
			m.reportsReceived,
			m.reportsPersisted,
			m.aggregationRuns,
			m.aggregationDuration,
		} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// RegisterQueueDepth exposes the current number of queued reports as a gauge.
func (m *Metrics) RegisterQueueDepth(depth func() int) error {
	if m == nil || m.reg == nil {
		return nil
	}
	return m.reg.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ingest_queue_depth",
		Help:      "Number of reports waiting for the report writer.",
	}, func() float64 { return float64(depth()) }))
}

func (m *Metrics) ReportReceived() {
	if m == nil {
		return
	}
	m.reportsReceived.Inc()
}

func (m *Metrics) ReportPersisted() {
	if m == nil {
		return
	}
	m.reportsPersisted.Inc()
}

// RecordAggregation records one aggregation pass for scope. The status label is
// derived from err.
func (m *Metrics) RecordAggregation(scope string, took time.Duration, err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusFailed
	}
	m.aggregationRuns.WithLabelValues(scope, status).Inc()
	m.aggregationDuration.WithLabelValues(scope).Observe(took.Seconds())
}
