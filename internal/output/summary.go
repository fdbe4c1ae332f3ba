package output

import (
	"fmt"
	"io"

	"github.com/hamed0406/sitecheck/internal/stats"
)

// WriteSummary renders the running per-URL statistics in the format
// the CLI prints after each round.
func WriteSummary(w io.Writer, recs []stats.Record) error {
	if _, err := fmt.Fprintln(w, "--- stats summary ---"); err != nil {
		return err
	}
	for _, rec := range recs {
		_, err := fmt.Fprintf(w, "%s -> checks: %d, uptime: %.1f%%, avg_rt_ms: %.1f\n",
			rec.URL, rec.Checks, rec.UptimePercent, rec.AvgResponseTimeMS)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "---------------------")
	return err
}
