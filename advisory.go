package main

import (
	"strconv"
	"strings"
)

// defaultVulnerabilityRules is the built-in advisory table. Loaded once at
// startup, matched in declaration order, never mutated at runtime.
var defaultVulnerabilityRules = []VulnerabilityRule{
	{
		Library:     "jQuery",
		Versions:    []string{"1.12.4", "2.2.4", "3.4.0"},
		Severity:    SeverityHigh,
		Description: "jQuery before 3.5.0 is vulnerable to cross-site scripting via htmlPrefilter (CVE-2020-11022, CVE-2020-11023)",
	},
	{
		Library:     "AngularJS",
		Versions:    []string{"1.7.9"},
		Severity:    SeverityHigh,
		Description: "AngularJS 1.x is end-of-life and carries unpatched sandbox-escape and XSS issues",
	},
	{
		Library:     "Lodash",
		Versions:    []string{"4.17.15"},
		Severity:    SeverityMedium,
		Description: "Lodash before 4.17.16 allows prototype pollution through zipObjectDeep (CVE-2020-8203)",
	},
	{
		Library:     "Moment.js",
		Versions:    []string{"2.29.1"},
		Severity:    SeverityMedium,
		Description: "Moment.js before 2.29.2 has a path traversal in the locale loader (CVE-2022-24785)",
	},
	{
		Library:     "Underscore.js",
		Versions:    []string{"1.12.0"},
		Severity:    SeverityMedium,
		Description: "Underscore.js 1.3.2 through 1.12.0 allows arbitrary code injection via the template function (CVE-2021-23358)",
	},
	{
		Library:     "Vue.js",
		Versions:    []string{"2.5.16"},
		Severity:    SeverityLow,
		Description: "Vue 2.x before 2.5.17 has a ReDoS in the server-side renderer",
	},
}

// matchVulnerability looks up the first rule in table order whose library
// name matches case-insensitively and whose version list matches the
// detected version. The zero rule and false are returned when nothing
// matches or no version was obtained.
func matchVulnerability(rules []VulnerabilityRule, name, version string) (VulnerabilityRule, bool) {
	if version == "" {
		return VulnerabilityRule{}, false
	}
	normalized := normalizeVersion(version)

	for _, rule := range rules {
		if !strings.EqualFold(rule.Library, name) {
			continue
		}
		for _, listed := range rule.Versions {
			if versionMatches(normalized, listed) {
				return rule, true
			}
		}
	}

	return VulnerabilityRule{}, false
}

// versionMatches reports whether a normalized detected version matches one
// listed vulnerable version: exact equality, the listed version as a
// dot-terminated prefix (minor-family match), or ordinal comparison yielding
// less-than-or-equal. The ordinal clause deliberately flags every version at
// or below a listed one; each rule's version list acts as a conservative
// safe-threshold rather than an exact enumeration.
func versionMatches(version, listed string) bool {
	if version == listed {
		return true
	}
	if strings.HasPrefix(version, listed+".") {
		return true
	}
	return compareVersions(version, listed) <= 0
}

// normalizeVersion trims whitespace and drops pre-release qualifiers
// (anything after a hyphen).
func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.Index(v, "-"); i >= 0 {
		v = v[:i]
	}
	return v
}

// compareVersions compares two version strings component-wise, splitting on
// '.'; missing trailing components are treated as 0 and non-numeric
// components as 0. Returns -1, 0, or 1.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		av := versionComponent(as, i)
		bv := versionComponent(bs, i)
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}

func versionComponent(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return n
}
