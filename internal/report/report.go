// Package report prints the human-readable run summary.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/heliotrack/heliotrack/internal/event"
	"github.com/heliotrack/heliotrack/internal/summary"
)

const divider = "============================================================"

// maxListed bounds the per-type event listing; the remainder collapses
// into an "... and N more" line.
const maxListed = 5

// Print writes the textual summary for one run.
func Print(w io.Writer, flares, cmes, storms []event.Event, sum summary.Summary) {
	fmt.Fprintf(w, "\n%s\n", divider)
	fmt.Fprintln(w, "SPACE WEATHER EVENT SUMMARY")
	fmt.Fprintln(w, divider)

	printType(w, "Solar Flares (FLR)", flares, func(e event.Event) string {
		return "Class " + e.Intensity
	})
	printType(w, "Coronal Mass Ejections (CME)", cmes, func(e event.Event) string {
		return e.Intensity
	})
	printType(w, "Geomagnetic Storms (GST)", storms, func(e event.Event) string {
		return e.Intensity
	})

	if sum.Travel != nil {
		fmt.Fprintf(w, "\nAverage CME to Earth travel time: %.1f hours (%.1f days) across %d linked pairs\n",
			sum.Travel.Hours, sum.Travel.Days, sum.Travel.Pairs)
	}
	if sum.Chains > 0 {
		fmt.Fprintf(w, "Resolved %d full flare → CME → storm chains\n", sum.Chains)
	}
	if sum.Anomalies > 0 {
		fmt.Fprintf(w, "Excluded %d anomalous links where the effect precedes its cause\n", sum.Anomalies)
	}

	fmt.Fprintf(w, "\n%s\n", divider)
}

func printType(w io.Writer, title string, events []event.Event, label func(event.Event) string) {
	fmt.Fprintf(w, "\n%s: %d events\n", title, len(events))

	sorted := make([]event.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	n := len(sorted)
	if n > maxListed {
		n = maxListed
	}
	for _, e := range sorted[:n] {
		fmt.Fprintf(w, "   - %s - %s\n", e.Start.Format("2006-01-02 15:04"), label(e))
	}
	if len(sorted) > maxListed {
		fmt.Fprintf(w, "   ... and %d more\n", len(sorted)-maxListed)
	}
}
