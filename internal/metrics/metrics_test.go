package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	prom_testutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	m.ReportReceived()
	m.ReportReceived()
	m.ReportPersisted()
	m.RecordAggregation("global", time.Second, nil)
	m.RecordAggregation("context", time.Second, errors.New("boom"))

	require.Equal(t, float64(2), prom_testutil.ToFloat64(m.reportsReceived))
	require.Equal(t, float64(1), prom_testutil.ToFloat64(m.reportsPersisted))
	require.Equal(t, float64(1), prom_testutil.ToFloat64(m.aggregationRuns.WithLabelValues("global", StatusSuccess)))
	require.Equal(t, float64(1), prom_testutil.ToFloat64(m.aggregationRuns.WithLabelValues("context", StatusFailed)))

	depth := 3
	require.NoError(t, m.RegisterQueueDepth(func() int { return depth }))

	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "barad_dur_ingest_queue_depth" {
			found = true
			require.Equal(t, float64(3), f.GetMetric()[0].GetGauge().GetValue())
		}
	}
	require.True(t, found)
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	require.Error(t, err)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ReportReceived()
	m.ReportPersisted()
	m.RecordAggregation("global", time.Second, nil)
	require.NoError(t, m.RegisterQueueDepth(func() int { return 0 }))

	unregistered, err := NewMetrics(nil)
	require.NoError(t, err)
	unregistered.ReportReceived()
	require.NoError(t, unregistered.RegisterQueueDepth(func() int { return 0 }))
}
