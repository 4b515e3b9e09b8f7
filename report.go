package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// topScriptsShown bounds how many scripts the terminal report lists.
const topScriptsShown = 10

// TerminalWriter renders analysis snapshots to the terminal with colors.
type TerminalWriter struct {
	out     io.Writer
	noColor bool
}

// NewTerminalWriter creates a terminal output writer.
func NewTerminalWriter(out io.Writer, noColor bool) *TerminalWriter {
	if noColor {
		color.NoColor = true
	}
	return &TerminalWriter{out: out, noColor: noColor}
}

// Write renders one snapshot.
func (w *TerminalWriter) Write(snap AnalysisSnapshot) error {
	bold := color.New(color.Bold)
	gray := color.New(color.FgHiBlack)

	bold.Fprintf(w.out, "\n%s\n", snap.URL)
	fmt.Fprintln(w.out, strings.Repeat("─", len(snap.URL)))

	w.printScripts(snap)
	w.printDependencies(snap)
	w.printMetrics(snap)
	w.printFindings(snap)

	gray.Fprintf(w.out, "\ncaptured at %s\n", snap.CapturedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func (w *TerminalWriter) printScripts(snap AnalysisSnapshot) {
	bold := color.New(color.Bold)
	gray := color.New(color.FgHiBlack)

	bold.Fprintf(w.out, "\nScripts (%d, %s total / %s gzipped)\n",
		len(snap.Scripts), formatKB(snap.Totals.TotalSize)+" KB", formatKB(snap.Totals.TotalGzipSize)+" KB")

	fmt.Fprintf(w.out, "  first-party: %d (%s KB)   third-party: %d (%s KB)   cdn: %d (%s KB)\n",
		snap.Totals.FirstPartyCount, formatKB(snap.Totals.FirstPartySize),
		snap.Totals.ThirdPartyCount, formatKB(snap.Totals.ThirdPartySize),
		snap.Totals.CDNCount, formatKB(snap.Totals.CDNSize))

	// consumers impose their own sort; the report shows heaviest first
	scripts := make([]ScriptResource, len(snap.Scripts))
	copy(scripts, snap.Scripts)
	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Size > scripts[j].Size })

	shown := scripts
	if len(shown) > topScriptsShown {
		shown = shown[:topScriptsShown]
	}

	for _, s := range shown {
		fmt.Fprintf(w.out, "  %8s KB  %s", formatKB(s.Size), s.Source)
		var marks []string
		if s.CDN {
			marks = append(marks, "cdn")
		}
		if s.Async {
			marks = append(marks, "async")
		}
		if s.Deferred {
			marks = append(marks, "defer")
		}
		if s.Module {
			marks = append(marks, "module")
		}
		if s.PotentiallyUnused {
			marks = append(marks, "unused?")
		}
		if len(marks) > 0 {
			gray.Fprintf(w.out, "  [%s]", strings.Join(marks, ", "))
		}
		fmt.Fprintln(w.out)
	}

	if len(scripts) > len(shown) {
		gray.Fprintf(w.out, "  ... and %d more\n", len(scripts)-len(shown))
	}
}

func (w *TerminalWriter) printDependencies(snap AnalysisSnapshot) {
	if len(snap.Frameworks) == 0 && len(snap.Libraries) == 0 {
		return
	}

	bold := color.New(color.Bold)
	bold.Fprintln(w.out, "\nDependencies")

	for _, d := range snap.Frameworks {
		fmt.Fprintf(w.out, "  framework: %s\n", dependencyLabel(d))
	}
	for _, d := range snap.Libraries {
		fmt.Fprintf(w.out, "  library:   %s\n", dependencyLabel(d))
	}
}

func dependencyLabel(d DependencyInfo) string {
	if d.Version != "" {
		return d.Name + " " + d.Version
	}
	return d.Name
}

func (w *TerminalWriter) printMetrics(snap AnalysisSnapshot) {
	bold := color.New(color.Bold)
	bold.Fprintln(w.out, "\nPerformance")

	m := snap.Metrics
	fmt.Fprintf(w.out, "  long tasks: %d (%.0f ms blocking)\n", m.LongTaskCount, m.BlockingTime)
	fmt.Fprintf(w.out, "  script load: %.0f ms   script parse: %.0f ms\n", m.TotalLoadTime, m.TotalParseTime)
	fmt.Fprintf(w.out, "  time to interactive: %.0f ms\n", m.TimeToInteractive)
}

func (w *TerminalWriter) printFindings(snap AnalysisSnapshot) {
	bold := color.New(color.Bold)
	bold.Fprintln(w.out, "\nSecurity")

	if len(snap.Findings) == 0 {
		green := color.New(color.FgGreen)
		green.Fprintln(w.out, "  no findings")
		return
	}

	for _, f := range snap.Findings {
		sev := w.severityColor(f.Severity)
		sev.Fprintf(w.out, "  [%s] ", strings.ToUpper(string(f.Severity)))
		fmt.Fprintf(w.out, "%s\n", f.Message)
	}
}

func (w *TerminalWriter) severityColor(s Severity) *color.Color {
	switch s {
	case SeverityHigh:
		return color.New(color.FgRed)
	case SeverityMedium:
		return color.New(color.FgYellow)
	case SeverityLow:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgWhite)
	}
}
