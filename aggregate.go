package main

import "time"

// libraryCap bounds how many detected libraries one snapshot surfaces.
const libraryCap = 5

// aggregateSnapshot assembles the final immutable snapshot from the engine
// outputs. Pure aggregation: sums by partition come straight from the
// resource list, raw totals only (no percentages), the library list is
// truncated, and a wall-clock capture timestamp is stamped. An empty
// resource list is a valid result with zeroed totals.
func aggregateSnapshot(pageURL string, resources []ScriptResource, frameworks, libraries []DependencyInfo, findings []SecurityFinding, capture *pageCapture) AnalysisSnapshot {
	var totals SnapshotTotals
	var metrics PerformanceMetrics

	for _, r := range resources {
		totals.TotalSize += r.Size
		totals.TotalGzipSize += r.GzipSize
		metrics.TotalLoadTime += r.LoadTime
		metrics.TotalParseTime += r.ParseTime

		if r.FirstParty {
			totals.FirstPartySize += r.Size
			totals.FirstPartyCount++
		} else {
			totals.ThirdPartySize += r.Size
			totals.ThirdPartyCount++
		}
		if r.CDN {
			totals.CDNSize += r.Size
			totals.CDNCount++
		}
	}

	metrics.LongTaskCount = capture.LongTasks.Count
	metrics.BlockingTime = capture.LongTasks.TotalTime
	metrics.TimeToInteractive = capture.Navigation.DomInteractive

	if len(libraries) > libraryCap {
		libraries = libraries[:libraryCap]
	}

	return AnalysisSnapshot{
		URL:        pageURL,
		Scripts:    resources,
		Frameworks: frameworks,
		Libraries:  libraries,
		Metrics:    metrics,
		Totals:     totals,
		Findings:   findings,
		CapturedAt: time.Now(),
	}
}
