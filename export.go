package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteJSON writes the snapshots as indented JSON. The snapshot shape is
// self-describing; no external lookups are needed to render it.
func WriteJSON(out io.Writer, snapshots []AnalysisSnapshot) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(snapshots); err != nil {
		return fmt.Errorf("failed to encode snapshots: %w", err)
	}

	return nil
}

// WriteJSONFile writes the snapshots as JSON to the given path.
func WriteJSONFile(path string, snapshots []AnalysisSnapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return WriteJSON(file, snapshots)
}

// WriteText renders the snapshots as a plain-text report.
func WriteText(out io.Writer, snapshots []AnalysisSnapshot) error {
	for _, snap := range snapshots {
		if _, err := io.WriteString(out, formatSnapshotText(snap)); err != nil {
			return fmt.Errorf("failed to write text report: %w", err)
		}
	}
	return nil
}

// formatSnapshotText renders one snapshot as plain text.
func formatSnapshotText(snap AnalysisSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", snap.URL)
	fmt.Fprintf(&b, "captured: %s\n", snap.CapturedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "scripts: %d, total %s KB (%s KB gzipped)\n",
		len(snap.Scripts), formatKB(snap.Totals.TotalSize), formatKB(snap.Totals.TotalGzipSize))
	fmt.Fprintf(&b, "first-party: %d (%s KB), third-party: %d (%s KB), cdn: %d (%s KB)\n",
		snap.Totals.FirstPartyCount, formatKB(snap.Totals.FirstPartySize),
		snap.Totals.ThirdPartyCount, formatKB(snap.Totals.ThirdPartySize),
		snap.Totals.CDNCount, formatKB(snap.Totals.CDNSize))

	for _, s := range snap.Scripts {
		fmt.Fprintf(&b, "  %s KB  %s\n", formatKB(s.Size), s.Source)
	}

	for _, d := range snap.Frameworks {
		fmt.Fprintf(&b, "framework: %s\n", dependencyLabel(d))
	}
	for _, d := range snap.Libraries {
		fmt.Fprintf(&b, "library: %s\n", dependencyLabel(d))
	}

	fmt.Fprintf(&b, "long tasks: %d (%.0f ms blocking), load %.0f ms, parse %.0f ms, tti %.0f ms\n",
		snap.Metrics.LongTaskCount, snap.Metrics.BlockingTime,
		snap.Metrics.TotalLoadTime, snap.Metrics.TotalParseTime,
		snap.Metrics.TimeToInteractive)

	for _, f := range snap.Findings {
		fmt.Fprintf(&b, "[%s] %s\n", f.Severity, f.Message)
	}

	b.WriteString("\n")
	return b.String()
}
