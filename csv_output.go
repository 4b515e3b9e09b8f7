package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVSink handles writing analysis snapshots to a CSV file
type CSVSink struct {
	outputFile string
}

// NewCSVSink creates a new CSVSink instance
func NewCSVSink(outputFile string) (*CSVSink, error) {
	newSink := CSVSink{outputFile}
	err := newSink.validateAndCreateOutputFile()
	if err != nil {
		return nil, fmt.Errorf("failed csv output file validation/creation: %w", err)
	}

	return &newSink, nil
}

// validateAndCreateOutputFile ensures the output directory exists and is writable
func (s *CSVSink) validateAndCreateOutputFile() error {
	if s.outputFile == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	// create the output file
	// this validates both directory existence and write permissions
	file, err := os.Create(s.outputFile)
	if err != nil {
		return fmt.Errorf("cannot create output file %s: %w", s.outputFile, err)
	}
	file.Close()

	return nil
}

// WriteSnapshots writes one summary row per analyzed page
func (s *CSVSink) WriteSnapshots(snapshots []AnalysisSnapshot) error {
	if s == nil || s.outputFile == "" {
		return fmt.Errorf("nil csv sink")
	}

	outFile, err := os.Create(s.outputFile)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer outFile.Close()

	writer := csv.NewWriter(outFile)
	defer writer.Flush()

	err = writer.Write([]string{
		"URL", "Scripts", "Total Size (KB)", "Gzipped (KB)",
		"Third-Party Size (KB)", "CDN Scripts", "Frameworks", "Libraries",
		"Long Tasks", "Findings",
	})
	if err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	for _, snap := range snapshots {
		err := writer.Write([]string{
			snap.URL,
			fmt.Sprint(len(snap.Scripts)),
			formatKB(snap.Totals.TotalSize),
			formatKB(snap.Totals.TotalGzipSize),
			formatKB(snap.Totals.ThirdPartySize),
			fmt.Sprint(snap.Totals.CDNCount),
			strings.Join(dependencyNames(snap.Frameworks), ";\n"),
			strings.Join(dependencyNames(snap.Libraries), ";\n"),
			fmt.Sprint(snap.Metrics.LongTaskCount),
			strings.Join(findingSummaries(snap.Findings), ";\n"),
		})
		if err != nil {
			return fmt.Errorf("failed to write to file: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatKB renders a byte count as kilobytes with one decimal
func formatKB(bytes int64) string {
	return fmt.Sprintf("%.1f", float64(bytes)/1024)
}

// dependencyNames renders detected dependencies as "name version" strings
func dependencyNames(deps []DependencyInfo) []string {
	var names []string
	for _, d := range deps {
		if d.Version != "" {
			names = append(names, d.Name+" "+d.Version)
		} else {
			names = append(names, d.Name)
		}
	}
	return names
}

// findingSummaries renders findings as "[severity] message" strings
func findingSummaries(findings []SecurityFinding) []string {
	var summaries []string
	for _, f := range findings {
		summaries = append(summaries, fmt.Sprintf("[%s] %s", f.Severity, f.Message))
	}
	return summaries
}
