package console

import (
	"fmt"
	"io"
	"strings"

	"travelbrowser/internal/output"

	"github.com/mattn/go-runewidth"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// Print renders the catalog report to the writer in a highly compact format.
func Print(w io.Writer, view output.ReportView) {
	fmt.Fprintf(w, "%s%s %s%s\n", colorCyan, "■", "TRAVEL DESTINATIONS", colorReset)

	for _, sec := range view.Sections {
		// Section Header
		header := "─ " + sec.Title
		if sec.Note != "" {
			header += " · " + sec.Note
		}
		fmt.Fprintf(w, "%s%s%s\n", colorCyan, header, colorReset)

		if len(sec.Items) == 0 {
			fmt.Fprintf(w, "  %s(no places)%s\n", colorYellow, colorReset)
		}

		for _, it := range sec.Items {
			// Compact Label (max 22 cells)
			label := runewidth.Truncate(it.Label, 22, "...")

			valStr := fmt.Sprintf("%.0f%s", it.Value, it.Unit)

			statusMarker := ""
			switch it.Status {
			case output.StatusOK:
				statusMarker = fmt.Sprintf(" %s✓%s", colorFor(it.Status), colorReset)
			case output.StatusWarn:
				statusMarker = fmt.Sprintf(" %s!%s", colorFor(it.Status), colorReset)
			}

			// Dots leader
			dots := strings.Repeat("·", 24-runewidth.StringWidth(label))

			note := runewidth.Truncate(it.Note, 40, "...")

			// Format: "  Label··········· 2 photos✓  Note"
			fmt.Fprintf(w, "  %s%s %10s%s  %s\n", label, colorCyan+dots+colorReset, valStr, statusMarker, note)
		}
	}

	// Single-line Summary
	fmt.Fprintf(w, "%s─ Summary%s: %d countries | %d places\n\n", colorCyan, colorReset, view.TotalCountries, view.TotalPlaces)
}

func colorFor(status string) string {
	switch status {
	case output.StatusWarn:
		return colorYellow
	default:
		return colorGreen
	}
}
