package main

import "time"

// Severity represents the severity level of a security finding.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// FindingKind categorizes a security finding.
type FindingKind string

const (
	FindingVulnerableDependency FindingKind = "vulnerable-dependency-version"
	FindingDynamicCodeExecution FindingKind = "dynamic-code-execution-usage"
	FindingUntrustedDomainLoad  FindingKind = "untrusted-domain-load"
	FindingMissingCSP           FindingKind = "missing-content-security-policy"
)

// inlineSource is the sentinel source identifier for inline script tags
const inlineSource = "inline"

// ScriptResource is one observed script load. Constructed once per analysis
// pass and never mutated afterwards.
type ScriptResource struct {
	// Source is the script URL, or "inline" for inline script tags
	Source string `json:"source"`

	// Size is the uncompressed size in bytes, always > 0 for recorded resources
	Size int64 `json:"size"`

	// GzipSize is the transferred (compressed) size in bytes
	GzipSize int64 `json:"gzip_size"`

	// LoadTime is the network load duration in milliseconds
	LoadTime float64 `json:"load_time"`

	// ParseTime is the derived parse duration in milliseconds, never negative
	ParseTime float64 `json:"parse_time"`

	// Host is the resolved host of the source URL
	Host string `json:"host"`

	FirstParty bool `json:"first_party"`
	CDN        bool `json:"cdn"`

	// declared loading-mode attributes, false when no tag was observed
	Deferred bool `json:"deferred"`
	Async    bool `json:"async"`
	Module   bool `json:"module"`

	// heuristic flags
	PotentiallyUnused bool `json:"potentially_unused"`
	HasDynamicEval    bool `json:"has_dynamic_eval"`
	UntrustedDomain   bool `json:"untrusted_domain"`

	// inline body kept for content scanning, never exported
	evalText string
}

// DependencyInfo is a detected runtime framework or library. Detectors only
// emit positive detections, so Detected is always true once constructed.
type DependencyInfo struct {
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
	Detected bool   `json:"detected"`
}

// SecurityFinding is one security observation. Severity is assigned by the
// rule that produced the finding.
type SecurityFinding struct {
	Kind     FindingKind `json:"kind"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	Source   string      `json:"source,omitempty"`
	Library  string      `json:"library,omitempty"`
	Version  string      `json:"version,omitempty"`
}

// VulnerabilityRule is a static advisory table entry, never mutated at runtime.
type VulnerabilityRule struct {
	// Library is the dependency name, matched case-insensitively
	Library string `yaml:"library" json:"library"`

	// Versions enumerates known-vulnerable version strings
	Versions []string `yaml:"versions" json:"versions"`

	Severity    Severity `yaml:"severity" json:"severity"`
	Description string   `yaml:"description" json:"description"`
}

// PerformanceMetrics holds per-pass timing data. Long-task samples reflect
// only what the observer had delivered by snapshot construction.
type PerformanceMetrics struct {
	LongTaskCount     int     `json:"long_task_count"`
	BlockingTime      float64 `json:"main_thread_blocking_time"`
	TotalLoadTime     float64 `json:"total_script_load_time"`
	TotalParseTime    float64 `json:"total_script_parse_time"`
	TimeToInteractive float64 `json:"time_to_interactive"`
}

// SnapshotTotals holds derived size/count totals. Always recomputed from the
// snapshot's resource list, never stored independently of it.
type SnapshotTotals struct {
	TotalSize       int64 `json:"total_size"`
	TotalGzipSize   int64 `json:"total_gzip_size"`
	FirstPartySize  int64 `json:"first_party_size"`
	FirstPartyCount int   `json:"first_party_count"`
	ThirdPartySize  int64 `json:"third_party_size"`
	ThirdPartyCount int   `json:"third_party_count"`
	CDNSize         int64 `json:"cdn_size"`
	CDNCount        int   `json:"cdn_count"`
}

// AnalysisSnapshot is the aggregate result of one analysis pass. Created
// fresh on every pass and superseded, not merged, by the next one.
type AnalysisSnapshot struct {
	URL        string             `json:"url"`
	Scripts    []ScriptResource   `json:"scripts"`
	Frameworks []DependencyInfo   `json:"frameworks"`
	Libraries  []DependencyInfo   `json:"libraries"`
	Metrics    PerformanceMetrics `json:"metrics"`
	Totals     SnapshotTotals     `json:"totals"`
	Findings   []SecurityFinding  `json:"findings"`
	CapturedAt time.Time          `json:"captured_at"`
}
