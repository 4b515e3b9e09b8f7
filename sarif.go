package main

import (
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

// ToSARIF converts the snapshots' security findings to SARIF format for CI
// integration.
func ToSARIF(snapshots []AnalysisSnapshot) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("creating sarif report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("pageweigh", "https://github.com/dkoval/pageweigh")

	rules := make(map[FindingKind]bool)

	for _, snap := range snapshots {
		for _, finding := range snap.Findings {
			ruleID := string(finding.Kind)

			if !rules[finding.Kind] {
				run.AddRule(ruleID).
					WithName(ruleID).
					WithDescription(findingKindDescription(finding.Kind)).
					WithDefaultConfiguration(&sarif.ReportingConfiguration{
						Level: toSARIFLevel(finding.Severity),
					})
				rules[finding.Kind] = true
			}

			result := sarif.NewRuleResult(ruleID).
				WithLevel(toSARIFLevel(finding.Severity)).
				WithMessage(sarif.NewTextMessage(finding.Message))

			location := finding.Source
			if location == "" {
				location = snap.URL
			}
			result.WithLocations([]*sarif.Location{
				sarif.NewLocationWithPhysicalLocation(
					sarif.NewPhysicalLocation().
						WithArtifactLocation(sarif.NewSimpleArtifactLocation(location)),
				),
			})

			run.AddResult(result)
		}
	}

	report.AddRun(run)
	return report, nil
}

// WriteSARIF writes the findings in SARIF format to a file.
func WriteSARIF(path string, snapshots []AnalysisSnapshot) error {
	report, err := ToSARIF(snapshots)
	if err != nil {
		return err
	}

	return report.WriteFile(path)
}

func findingKindDescription(kind FindingKind) string {
	switch kind {
	case FindingVulnerableDependency:
		return "A detected framework or library version falls within a known-vulnerable range"
	case FindingDynamicCodeExecution:
		return "A script uses eval, the Function constructor, or string timer callbacks"
	case FindingUntrustedDomainLoad:
		return "Scripts are loaded from domains outside the trusted allow-list"
	case FindingMissingCSP:
		return "The page declares no Content-Security-Policy meta tag"
	default:
		return string(kind)
	}
}

func toSARIFLevel(severity Severity) string {
	switch severity {
	case SeverityHigh:
		return "error"
	case SeverityMedium:
		return "warning"
	case SeverityLow:
		return "note"
	default:
		return "none"
	}
}
