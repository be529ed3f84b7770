package results

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.3f s", v)
}

// PrintSummary renders one row per scenario and a total row.
func PrintSummary(w io.Writer, results AggregatedResults) error {
	table := tablewriter.NewWriter(w)
	table.Header("Scenario", "Runs", "Failed", "Min", "Median", "Average", "Max")

	for _, res := range results.ScenarioResults {
		err := table.Append(
			res.Name,
			strconv.Itoa(len(res.Durations)),
			strconv.FormatUint(uint64(res.Failures), 10),
			formatSeconds(res.MinLatency),
			formatSeconds(res.MedianLatency),
			formatSeconds(res.AverageLatency),
			formatSeconds(res.MaxLatency),
		)
		if err != nil {
			return err
		}
	}

	table.Footer(
		"total",
		strconv.FormatUint(uint64(results.Success), 10),
		strconv.FormatUint(uint64(results.Fail), 10),
		formatSeconds(results.MinLatency),
		formatSeconds(results.MedianLatency),
		formatSeconds(results.AverageLatency),
		formatSeconds(results.MaxLatency),
	)

	return table.Render()
}
