package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"golang.org/x/sync/errgroup"
)

// patterns indicating dynamic code execution inside a script body
var dynamicEvalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\beval\s*\(`),
	regexp.MustCompile(`\bnew\s+Function\s*\(`),
	regexp.MustCompile(`\bsetTimeout\s*\(\s*['"]`),
	regexp.MustCompile(`\bsetInterval\s*\(\s*['"]`),
	regexp.MustCompile(`\bexecScript\s*\(`),
}

// maxScriptBodyBytes caps how much of an external script body is read for
// pattern scanning.
const maxScriptBodyBytes = 4 << 20

// securityScanner combines classification flags, dependency advisories, and
// dynamic-code-execution detection into the finding list.
type securityScanner struct {
	rules  []VulnerabilityRule
	client *http.Client
}

func newSecurityScanner(rules []VulnerabilityRule, client *http.Client) *securityScanner {
	if client == nil {
		client = http.DefaultClient
	}
	return &securityScanner{rules: rules, client: client}
}

// scan produces the finding list. Rules are independent and order-stable:
// untrusted-domain summary, vulnerable dependencies, dynamic-eval resources,
// missing CSP. Scanning failures never abort the pass.
func (s *securityScanner) scan(ctx context.Context, capture *pageCapture, resources []ScriptResource, frameworks, libraries []DependencyInfo) []SecurityFinding {
	s.flagDynamicEval(ctx, resources, capture.DocumentHost)

	var findings []SecurityFinding

	if untrusted, example := countUntrusted(resources); untrusted > 0 {
		findings = append(findings, SecurityFinding{
			Kind:     FindingUntrustedDomainLoad,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("%d script(s) loaded from untrusted domains (e.g. %s)", untrusted, example),
			Source:   example,
		})
	}

	for _, dep := range frameworks {
		findings = s.appendAdvisoryFinding(findings, dep)
	}
	for _, dep := range libraries {
		findings = s.appendAdvisoryFinding(findings, dep)
	}

	for _, r := range resources {
		if !r.HasDynamicEval {
			continue
		}
		findings = append(findings, SecurityFinding{
			Kind:     FindingDynamicCodeExecution,
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("%s uses dynamic code execution (eval, Function constructor, or string timer callbacks)", r.Source),
			Source:   r.Source,
		})
	}

	// header-delivered CSP is invisible here; only the meta declaration is
	// checked, a known detection gap
	if !capture.HasCSPMeta {
		findings = append(findings, SecurityFinding{
			Kind:     FindingMissingCSP,
			Severity: SeverityLow,
			Message:  "no Content-Security-Policy meta declaration found on the page",
		})
	}

	return findings
}

func (s *securityScanner) appendAdvisoryFinding(findings []SecurityFinding, dep DependencyInfo) []SecurityFinding {
	rule, matched := matchVulnerability(s.rules, dep.Name, dep.Version)
	if !matched {
		return findings
	}
	return append(findings, SecurityFinding{
		Kind:     FindingVulnerableDependency,
		Severity: rule.Severity,
		Message:  fmt.Sprintf("%s %s has known vulnerabilities: %s", dep.Name, dep.Version, rule.Description),
		Library:  dep.Name,
		Version:  dep.Version,
	})
}

func countUntrusted(resources []ScriptResource) (count int, example string) {
	for _, r := range resources {
		if !r.UntrustedDomain {
			continue
		}
		if count == 0 {
			example = r.Source
		}
		count++
	}
	return count, example
}

// flagDynamicEval marks resources whose body matches the pattern set. Inline
// bodies are scanned directly; external same-origin bodies are fetched
// concurrently and every fetch settles before the scan finalizes - a failed
// fetch degrades that one script to not-flagged. Cross-origin scripts are
// never fetched and never flagged by content inspection alone.
func (s *securityScanner) flagDynamicEval(ctx context.Context, resources []ScriptResource, documentHost string) {
	var g errgroup.Group

	for i := range resources {
		r := &resources[i]

		if r.Source == inlineSource {
			r.HasDynamicEval = hasDynamicEval(r.evalText)
			continue
		}
		if r.Host == "" || r.Host != documentHost {
			continue
		}

		g.Go(func() error {
			body, err := s.fetchScriptBody(ctx, r.Source)
			if err != nil {
				return nil // degrade to not-flagged
			}
			r.HasDynamicEval = hasDynamicEval(body)
			return nil
		})
	}

	// workers always return nil, so this is a settle-all join
	_ = g.Wait()
}

func (s *securityScanner) fetchScriptBody(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("non-200 response: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptBodyBytes))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// hasDynamicEval reports whether the script body matches any pattern in the
// fixed dynamic-code-execution set.
func hasDynamicEval(body string) bool {
	if body == "" {
		return false
	}
	for _, pattern := range dynamicEvalPatterns {
		if pattern.MatchString(body) {
			return true
		}
	}
	return false
}
