package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// analyzer drives a headless browser over target pages and runs the
// analysis engine on each capture.
type analyzer struct {
	cfg         *Config
	detectors   []detector
	probeRunner string
	scanner     *securityScanner

	// progress, when set, receives a short status line before each page
	progress func(string)
}

// newAnalyzer wires the detector and advisory tables from the configuration
// into one reusable analyzer.
func newAnalyzer(cfg *Config) (*analyzer, error) {
	detectors := cfg.detectorTable()

	runner, err := buildProbeRunner(detectors)
	if err != nil {
		return nil, err
	}

	return &analyzer{
		cfg:         cfg,
		detectors:   detectors,
		probeRunner: runner,
		scanner:     newSecurityScanner(cfg.advisoryTable(), http.DefaultClient),
	}, nil
}

// analyzeWebsites opens all targets in one headless browser and produces
// one snapshot per page. A failed page is reported and skipped; it does not
// abort the batch.
func (a *analyzer) analyzeWebsites(ctx context.Context, websites []*website) ([]AnalysisSnapshot, error) {
	// setup browser options
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)

	// create context with ExecAllocator
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// create browser context
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Printf))
	defer cancelBrowser()

	// open headless browser with a blank page
	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		return nil, err
	}

	var snapshots []AnalysisSnapshot
	for i, w := range websites {
		if a.progress != nil {
			a.progress(fmt.Sprintf("Analyzing %s (%d/%d)", w.domain, i+1, len(websites)))
		}

		snapshot, err := a.analyzePage(browserCtx, w)
		if err != nil {
			fmt.Printf("⚠️ failed to analyze %s: %v\n", w.originalURL, err)
			continue
		}

		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

// analyzePage navigates to the page, captures its raw data, and runs the
// engine. Browser context errors propagate to the caller uninterpreted.
func (a *analyzer) analyzePage(ctx context.Context, w *website) (AnalysisSnapshot, error) {
	timeoutCtx, cancelTimeout := context.WithTimeout(ctx, time.Duration(a.cfg.TimeoutSeconds)*time.Second)
	defer cancelTimeout()

	capture := &pageCapture{DocumentHost: w.domain}
	var html string
	var probeResults []probeResult

	err := chromedp.Run(timeoutCtx,
		// install the long-task observer at document start so buffered
		// delivery covers the whole page lifetime
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(longTaskScript).Do(ctx)
			return err
		}),
		chromedp.Navigate(w.originalURL),
		chromedp.Sleep(time.Duration(a.cfg.SettleSeconds)*time.Second),
		chromedp.Location(&capture.DocumentURL),
		chromedp.Evaluate(captureScript, capture),
		chromedp.OuterHTML("html", &html),
		chromedp.Evaluate(a.probeRunner, &probeResults),
	)
	if err != nil {
		return AnalysisSnapshot{}, err
	}

	if err := parseDocument(capture, html); err != nil {
		return AnalysisSnapshot{}, err
	}

	// the document may have redirected; reconcile against the landed host
	if host, ok := resolveHost(capture.DocumentURL); ok && host != "" {
		capture.DocumentHost = host
	}

	return a.buildSnapshot(timeoutCtx, capture, probeResults), nil
}

// buildSnapshot runs the engine over one capture: reconcile, classify,
// detect, scan, aggregate. Pure except for the eval-scan body fetches.
func (a *analyzer) buildSnapshot(ctx context.Context, capture *pageCapture, probeResults []probeResult) AnalysisSnapshot {
	resources := reconcileResources(capture)

	c := newClassifier(capture, a.cfg.CDNPatterns, a.cfg.TrustedDomains)
	c.classify(resources)

	frameworks, libraries := buildDependencyLists(probeResults, a.detectors)
	if !a.cfg.Analyses.Frameworks {
		frameworks = nil
	}
	if !a.cfg.Analyses.Libraries {
		libraries = nil
	}

	var findings []SecurityFinding
	if a.cfg.Analyses.Security {
		findings = a.scanner.scan(ctx, capture, resources, frameworks, libraries)
	}

	snapshot := aggregateSnapshot(capture.DocumentURL, resources, frameworks, libraries, findings, capture)
	if !a.cfg.Analyses.Performance {
		snapshot.Metrics = PerformanceMetrics{}
	}

	return snapshot
}
