// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, name string) *dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == namespace+"_"+name {
			return f
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	ops := CounterVec("test_ops", []string{"op"})
	ops.AddWithLabel(2, map[string]string{"op": "stake"})
	CounterVec("test_ops", []string{"op"}).AddWithLabel(3, map[string]string{"op": "stake"})
	ops.AddWithLabel(1, map[string]string{"op": "claim"})
	assert.Len(t, gather(t, "test_ops").GetMetric(), 2)

	gauge := Gauge("test_gauge")
	gauge.Set(7)
	gauge.Add(1)
	assert.Equal(t, float64(8), gather(t, "test_gauge").GetMetric()[0].GetGauge().GetValue())

	hist := HistogramVec("test_hist_vec", []string{"op"}, BucketMicros)
	hist.ObserveWithLabels(30, map[string]string{"op": "stake"})
	assert.Equal(t, uint64(1), gather(t, "test_hist_vec").GetMetric()[0].GetHistogram().GetSampleCount())

	// handler exposes the registry
	rec := httptest.NewRecorder()
	HTTPHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `thor_staking_test_ops{op="stake"} 5`))
}
