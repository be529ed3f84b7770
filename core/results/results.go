// Package results contains the information about the results and handles the
// processing and display / logging of the information. The measurements of
// every scenario are collected by the runner and aggregated here.
package results

import "sort"

// ScenarioResult holds the measured durations of one scenario, in seconds.
type ScenarioResult struct {
	Name           string    `json:"Name"`
	Durations      []float64 `json:"Durations"`      // Duration of each successful run, in completion order
	Failures       uint      `json:"Failures"`       // Runs that did not complete
	AverageLatency float64   `json:"AverageLatency"` // Averaged duration of the runs
	MinLatency     float64   `json:"MinLatency"`     // smallest duration observed
	MaxLatency     float64   `json:"MaxLatency"`     // highest duration observed
	MedianLatency  float64   `json:"MedianLatency"`  // median duration
}

// AggregatedResults returns the results of all scenarios, and stores the
// calculated information over every run (e.g. max, min, ...)
type AggregatedResults struct {
	Benchmark       string           `json:"Benchmark"`
	ScenarioResults []ScenarioResult `json:"ScenarioResults"` // All scenario results, in run order
	Success         uint             `json:"Success"`         // Successful runs
	Fail            uint             `json:"Fail"`            // Failed runs
	MaxLatency      float64          `json:"MaxLatency"`      // highest latency observed
	MinLatency      float64          `json:"MinLatency"`      // smallest latency observed
	AverageLatency  float64          `json:"AverageLatency"`  // average latency
	MedianLatency   float64          `json:"MedianLatency"`   // median latency
}

// NewScenarioResult computes the statistics of the given durations.
func NewScenarioResult(name string, durations []float64, failures uint) ScenarioResult {
	res := ScenarioResult{
		Name:      name,
		Durations: durations,
		Failures:  failures,
	}

	res.MinLatency, res.MaxLatency, res.AverageLatency, res.MedianLatency = stats(durations)

	return res
}

// CalculateAggregatedResults calculates the aggregated results given the set
// of results from the scenarios
func CalculateAggregatedResults(benchmark string, scenarioResults []ScenarioResult) AggregatedResults {
	aggregated := AggregatedResults{
		Benchmark:       benchmark,
		ScenarioResults: scenarioResults,
	}

	if len(scenarioResults) == 0 {
		return aggregated
	}

	var allLatencies []float64

	for _, res := range scenarioResults {
		allLatencies = append(allLatencies, res.Durations...)
		aggregated.Success += uint(len(res.Durations))
		aggregated.Fail += res.Failures
	}

	aggregated.MinLatency, aggregated.MaxLatency, aggregated.AverageLatency, aggregated.MedianLatency = stats(allLatencies)

	return aggregated
}

// stats returns min, max, average and median of the values, all zero when
// there is none.
func stats(values []float64) (float64, float64, float64, float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	var median float64

	// If it's even
	midNumber := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[midNumber-1] + sorted[midNumber]) / 2
	} else {
		median = sorted[midNumber]
	}

	return sorted[0], sorted[len(sorted)-1], sum / float64(len(sorted)), median
}
