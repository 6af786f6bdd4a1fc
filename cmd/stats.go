package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/df07/go-volpath/pkg/renderer"
	"github.com/olekukonko/tablewriter"
)

// writeRenderStats prints a per-worker breakdown of a render with a totals footer
func writeRenderStats(w io.Writer, stats renderer.RenderStats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Tiles", "Samples", "% of samples", "Busy time"})
	for _, worker := range stats.Workers {
		share := 0.0
		if stats.TotalSamples > 0 {
			share = 100 * float64(worker.Samples) / float64(stats.TotalSamples)
		}
		table.Append([]string{
			fmt.Sprintf("%d", worker.ID),
			fmt.Sprintf("%d", worker.Tiles),
			fmt.Sprintf("%d", worker.Samples),
			fmt.Sprintf("%02.1f %%", share),
			worker.Duration.String(),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d passes", stats.Passes),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%d discarded", stats.DiscardedSamples),
		stats.Duration.String(),
	})
	table.Render()
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	writeRenderStats(&buf, stats)
	logger.Noticef("render statistics (%.0f samples/s)\n%s", stats.SamplesPerSecond(), buf.String())
}
