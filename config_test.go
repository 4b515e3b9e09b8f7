package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigEnablesAllAnalyses(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Analyses.Frameworks || !cfg.Analyses.Libraries || !cfg.Analyses.Performance || !cfg.Analyses.Security {
		t.Errorf("expected every analysis enabled by default, got %+v", cfg.Analyses)
	}
	if cfg.TimeoutSeconds <= 0 {
		t.Error("expected a positive default timeout")
	}
	if cfg.Output.Format != "terminal" {
		t.Errorf("expected terminal default format, got %q", cfg.Output.Format)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pageweigh.yaml")
	content := `
analyses:
  frameworks: true
  libraries: true
  performance: false
  security: true
trusted_domains:
  - internal-cdn.corp
custom_detectors:
  - name: Acme Widgets
    probe: "!!window.AcmeWidgets"
    version: "window.AcmeWidgets.version"
vulnerability_rules:
  - library: Acme Widgets
    versions: ["1.2.0"]
    severity: medium
    description: known issue
output:
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Analyses.Performance {
		t.Error("performance analysis should be disabled by the file")
	}
	if !cfg.Analyses.Security {
		t.Error("security analysis should remain enabled")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Output.Format)
	}
	if len(cfg.TrustedDomains) != 1 || cfg.TrustedDomains[0] != "internal-cdn.corp" {
		t.Errorf("unexpected trusted domains: %v", cfg.TrustedDomains)
	}
	if len(cfg.CustomDetectors) != 1 || cfg.CustomDetectors[0].Name != "Acme Widgets" {
		t.Errorf("unexpected custom detectors: %+v", cfg.CustomDetectors)
	}

	// defaults not mentioned in the file survive
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("timeout = %d, want default 60", cfg.TimeoutSeconds)
	}

	rules := cfg.advisoryTable()
	if len(rules) != len(defaultVulnerabilityRules)+1 {
		t.Errorf("expected config rules appended to the built-in table, got %d rules", len(rules))
	}
}
