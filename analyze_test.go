package main

import (
	"context"
	"testing"
)

func TestPerformanceToggleZeroesWholeMetricsRecord(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analyses.Performance = false
	cfg.Analyses.Security = false

	a := &analyzer{cfg: cfg}

	capture := &pageCapture{
		DocumentURL:  "https://example.com/",
		DocumentHost: "example.com",
		Resources: []resourceTimingEntry{{
			Name:            "https://example.com/app.js",
			InitiatorType:   "script",
			FetchStart:      10,
			ResponseEnd:     60,
			Duration:        90,
			TransferSize:    1000,
			DecodedBodySize: 5000,
		}},
		LongTasks:  longTaskMetrics{Count: 3, TotalTime: 240},
		Navigation: navigationTiming{DomInteractive: 1200},
	}

	snap := a.buildSnapshot(context.Background(), capture, nil)

	if snap.Metrics != (PerformanceMetrics{}) {
		t.Errorf("metrics must be fully zeroed when the performance analysis is off, got %+v", snap.Metrics)
	}
	if snap.Totals.TotalSize != 5000 {
		t.Errorf("size totals must survive the performance toggle, got %d", snap.Totals.TotalSize)
	}
}

func TestPerformanceEnabledKeepsLoadAndParseSums(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analyses.Security = false

	a := &analyzer{cfg: cfg}

	capture := &pageCapture{
		DocumentURL:  "https://example.com/",
		DocumentHost: "example.com",
		Resources: []resourceTimingEntry{{
			Name:            "https://example.com/app.js",
			InitiatorType:   "script",
			FetchStart:      10,
			ResponseEnd:     60,
			Duration:        90,
			TransferSize:    1000,
			DecodedBodySize: 5000,
		}},
	}

	snap := a.buildSnapshot(context.Background(), capture, nil)

	if snap.Metrics.TotalLoadTime != 50 || snap.Metrics.TotalParseTime != 40 {
		t.Errorf("load/parse = %.0f/%.0f, want 50/40", snap.Metrics.TotalLoadTime, snap.Metrics.TotalParseTime)
	}
}
