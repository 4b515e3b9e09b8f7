package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the pageweigh settings. Loaded once at startup; the engine
// receives its detector and advisory tables from here and never consults
// ambient state afterwards.
type Config struct {
	// Analyses gates which sub-analyses run
	Analyses AnalysesConfig `yaml:"analyses"`

	// CustomDetectors are appended to the built-in detector table
	CustomDetectors []detector `yaml:"custom_detectors"`

	// VulnerabilityRules are appended to the built-in advisory table
	VulnerabilityRules []VulnerabilityRule `yaml:"vulnerability_rules"`

	// TrustedDomains extends the untrusted-domain allow-list
	TrustedDomains []string `yaml:"trusted_domains"`

	// CDNPatterns extends the CDN host allow-list
	CDNPatterns []string `yaml:"cdn_patterns"`

	// IgnoredDomains are skipped when collecting target URLs
	IgnoredDomains []string `yaml:"ignored_domains"`

	// Output configures report destinations
	Output OutputConfig `yaml:"output"`

	// TimeoutSeconds is the per-page analysis budget
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// SettleSeconds is the post-navigation wait before capture
	SettleSeconds int `yaml:"settle_seconds"`
}

// AnalysesConfig toggles individual sub-analyses.
type AnalysesConfig struct {
	Frameworks  bool `yaml:"frameworks"`
	Libraries   bool `yaml:"libraries"`
	Performance bool `yaml:"performance"`
	Security    bool `yaml:"security"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	// Format is the terminal output format (terminal, json, text)
	Format string `yaml:"format"`

	// NoColor disables terminal colors
	NoColor bool `yaml:"no_color"`

	// CSVFile is the path for the batch CSV report
	CSVFile string `yaml:"csv_file"`

	// SARIFFile is the path for SARIF findings output
	SARIFFile string `yaml:"sarif_file"`

	// HistoryFile is the path for the per-domain history store
	HistoryFile string `yaml:"history_file"`
}

// DefaultConfig returns the default configuration with every analysis on.
func DefaultConfig() *Config {
	return &Config{
		Analyses: AnalysesConfig{
			Frameworks:  true,
			Libraries:   true,
			Performance: true,
			Security:    true,
		},
		Output: OutputConfig{
			Format: "terminal",
		},
		TimeoutSeconds: 60,
		SettleSeconds:  3,
	}
}

// LoadConfig loads configuration from a YAML file over the defaults.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// FindConfig looks for a config file in standard locations under root.
func FindConfig(root string) string {
	candidates := []string{
		".pageweigh.yaml",
		".pageweigh.yml",
		"pageweigh.yaml",
		"pageweigh.yml",
	}

	for _, name := range candidates {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// detectorTable returns the built-in detector registry with custom
// detectors appended, preserving declaration order.
func (c *Config) detectorTable() []detector {
	table := make([]detector, 0, len(builtinDetectors)+len(c.CustomDetectors))
	table = append(table, builtinDetectors...)
	table = append(table, c.CustomDetectors...)
	return table
}

// advisoryTable returns the built-in advisory rules with config-supplied
// rules appended.
func (c *Config) advisoryTable() []VulnerabilityRule {
	table := make([]VulnerabilityRule, 0, len(defaultVulnerabilityRules)+len(c.VulnerabilityRules))
	table = append(table, defaultVulnerabilityRules...)
	table = append(table, c.VulnerabilityRules...)
	return table
}
