package results

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCalculateAggregatedResults(t *testing.T) {
	t.Run("test empty", func(t *testing.T) {
		agg := CalculateAggregatedResults("bench", nil)
		require.Equal(t, "bench", agg.Benchmark)
		require.Zero(t, agg.Success)
		require.Zero(t, agg.MaxLatency)
	})

	t.Run("test odd and even", func(t *testing.T) {
		one := NewScenarioResult("one", []float64{3, 1, 2}, 0)
		require.Equal(t, 1.0, one.MinLatency)
		require.Equal(t, 3.0, one.MaxLatency)
		require.Equal(t, 2.0, one.MedianLatency)
		require.Equal(t, 2.0, one.AverageLatency)
		// Durations keep their completion order
		require.Equal(t, []float64{3, 1, 2}, one.Durations)

		two := NewScenarioResult("two", []float64{4, 6}, 1)
		require.Equal(t, 5.0, two.MedianLatency)

		agg := CalculateAggregatedResults("bench", []ScenarioResult{one, two})
		require.Equal(t, uint(5), agg.Success)
		require.Equal(t, uint(1), agg.Fail)
		require.Equal(t, 1.0, agg.MinLatency)
		require.Equal(t, 6.0, agg.MaxLatency)
		require.Equal(t, 3.0, agg.MedianLatency)
		require.Equal(t, 3.2, agg.AverageLatency)
	})

	t.Run("test scenario without runs", func(t *testing.T) {
		res := NewScenarioResult("none", nil, 2)
		require.Zero(t, res.MedianLatency)
		require.Equal(t, uint(2), res.Failures)
	})
}

func TestWriteResultsToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	bench := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(bench, []byte("name: x\n"), 0o644))

	agg := CalculateAggregatedResults("bench", []ScenarioResult{NewScenarioResult("a", []float64{1.5}, 0)})

	path, err := WriteResultsToFile(bench, agg, dir)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded AggregatedResults
	require.NoError(t, json.Unmarshal(content, &decoded))
	require.Equal(t, agg, decoded)

	copies, err := filepath.Glob(filepath.Join(dir, "*_workload.yaml"))
	require.NoError(t, err)
	require.Len(t, copies, 1)

	t.Run("test premade has no copy", func(t *testing.T) {
		other := t.TempDir()
		_, err := WriteResultsToFile("", agg, other)
		require.NoError(t, err)

		copies, err := filepath.Glob(filepath.Join(other, "*_workload.yaml"))
		require.NoError(t, err)
		require.Empty(t, copies)
	})

	t.Run("test missing config", func(t *testing.T) {
		_, err := WriteResultsToFile(filepath.Join(dir, "nope.yaml"), agg, t.TempDir())
		require.Error(t, err)
	})
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer

	agg := CalculateAggregatedResults("bench", []ScenarioResult{
		NewScenarioResult("contract-transfer-1x-estimated", []float64{1.25}, 0),
	})

	require.NoError(t, PrintSummary(&buf, agg))

	out := buf.String()
	require.True(t, strings.Contains(out, "contract-transfer-1x-estimated"))
	require.True(t, strings.Contains(out, "1.250 s"))
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.Observe("a", 0.5)
	r.Observe("a", 1.5)
	r.Observe("b", 2)
	r.Fail("b")

	require.Equal(t, 2, testutil.CollectAndCount(r.duration))
	require.Equal(t, 1.0, testutil.ToFloat64(r.failures.WithLabelValues("b")))

	count, err := testutil.GatherAndCount(r.Gatherer(), "txbench_operation_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestRecorderPush(t *testing.T) {
	var pushed atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.Contains(req.URL.Path, "/metrics/job/txbench") {
			pushed.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	r := NewRecorder()
	r.Observe("a", 1)

	require.NoError(t, r.Push(server.URL, "txbench"))
	require.Equal(t, int32(1), pushed.Load())

	server.Close()
	require.Error(t, r.Push(server.URL, "txbench"))
}
