package main

import (
	"encoding/json"
	"fmt"
	"sort"
)

// detector is one capability probe: a name, a boolean predicate expression
// evaluated against the page's globals, and an optional version-extractor
// expression. The registry is ordered, append-only data; custom detectors
// supplied through configuration are appended to the built-in table.
type detector struct {
	Name      string `yaml:"name"`
	Probe     string `yaml:"probe"`
	Version   string `yaml:"version,omitempty"`
	Framework bool   `yaml:"framework,omitempty"`
}

// probeResult is one positive detection reported by the in-page runner.
type probeResult struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// builtinDetectors probes for well-known framework and library globals.
// The Underscore probe explicitly excludes Lodash so the shared `_` global
// is never attributed twice.
var builtinDetectors = []detector{
	// frameworks
	{
		Name:      "React",
		Probe:     `!!(window.React && window.React.version) || !!window.__REACT_DEVTOOLS_GLOBAL_HOOK__`,
		Version:   `window.React ? window.React.version : null`,
		Framework: true,
	},
	{
		Name:      "Angular",
		Probe:     `!!window.getAllAngularRootElements || !!document.querySelector('[ng-version]')`,
		Version:   `(function(){ var el = document.querySelector('[ng-version]'); return el ? el.getAttribute('ng-version') : null; })()`,
		Framework: true,
	},
	{
		Name:      "AngularJS",
		Probe:     `!!(window.angular && window.angular.version)`,
		Version:   `window.angular.version.full`,
		Framework: true,
	},
	{
		Name:      "Vue.js",
		Probe:     `!!window.Vue || !!window.__VUE__`,
		Version:   `window.Vue ? window.Vue.version : null`,
		Framework: true,
	},
	{
		Name:      "Svelte",
		Probe:     `!!window.__svelte`,
		Framework: true,
	},
	{
		Name:      "Next.js",
		Probe:     `!!window.__NEXT_DATA__`,
		Framework: true,
	},
	{
		Name:      "Nuxt",
		Probe:     `!!window.__NUXT__`,
		Framework: true,
	},
	{
		Name:      "Ember.js",
		Probe:     `!!(window.Ember && window.Ember.VERSION)`,
		Version:   `window.Ember.VERSION`,
		Framework: true,
	},

	// libraries
	{
		Name:    "jQuery",
		Probe:   `!!(window.jQuery && window.jQuery.fn && window.jQuery.fn.jquery)`,
		Version: `window.jQuery.fn.jquery`,
	},
	{
		Name:    "Lodash",
		Probe:   `typeof window._ === 'function' && typeof window._.VERSION === 'string' && typeof window._.cloneDeep === 'function'`,
		Version: `window._.VERSION`,
	},
	{
		Name:    "Underscore.js",
		Probe:   `typeof window._ === 'function' && typeof window._.VERSION === 'string' && typeof window._.cloneDeep !== 'function'`,
		Version: `window._.VERSION`,
	},
	{
		Name:    "Moment.js",
		Probe:   `!!(window.moment && window.moment.version)`,
		Version: `window.moment.version`,
	},
	{
		Name:    "Axios",
		Probe:   `!!window.axios`,
		Version: `window.axios.VERSION ? window.axios.VERSION : null`,
	},
	{
		Name:    "D3",
		Probe:   `!!(window.d3 && window.d3.version)`,
		Version: `window.d3.version`,
	},
	{
		Name:    "Backbone.js",
		Probe:   `!!(window.Backbone && window.Backbone.VERSION)`,
		Version: `window.Backbone.VERSION`,
	},
	{
		Name:    "GSAP",
		Probe:   `!!(window.gsap && window.gsap.version)`,
		Version: `window.gsap.version`,
	},
}

// buildProbeRunner renders the detector table into one in-page expression
// that evaluates every probe independently. A probe or extractor that throws
// is treated as a non-detection for that entry only.
func buildProbeRunner(detectors []detector) (string, error) {
	type spec struct {
		Name    string `json:"name"`
		Probe   string `json:"probe"`
		Version string `json:"version"`
	}

	specs := make([]spec, 0, len(detectors))
	for _, d := range detectors {
		specs = append(specs, spec{Name: d.Name, Probe: d.Probe, Version: d.Version})
	}

	encoded, err := json.Marshal(specs)
	if err != nil {
		return "", fmt.Errorf("failed to encode detector table: %w", err)
	}

	return fmt.Sprintf(`(() => {
	const specs = %s;
	const out = [];
	for (const s of specs) {
		let detected = false;
		try { detected = !!eval(s.probe); } catch (e) { detected = false; }
		if (!detected) continue;

		let version = "";
		if (s.version) {
			try {
				const v = eval(s.version);
				if (v !== null && v !== undefined) version = String(v);
			} catch (e) {}
		}
		out.push({ name: s.name, version: version });
	}
	return out;
})()`, encoded), nil
}

// buildDependencyLists splits positive probe results into frameworks and
// libraries. Duplicate names keep the first detection (table order wins);
// libraries are sorted lexicographically by name. The top-N cap is applied
// later, at aggregation.
func buildDependencyLists(results []probeResult, table []detector) (frameworks, libraries []DependencyInfo) {
	isFramework := make(map[string]bool, len(table))
	known := make(map[string]bool, len(table))
	for _, d := range table {
		if !known[d.Name] {
			known[d.Name] = true
			isFramework[d.Name] = d.Framework
		}
	}

	seen := make(map[string]bool, len(results))
	for _, r := range results {
		if !known[r.Name] || seen[r.Name] {
			continue
		}
		seen[r.Name] = true

		info := DependencyInfo{Name: r.Name, Version: r.Version, Detected: true}
		if isFramework[r.Name] {
			frameworks = append(frameworks, info)
		} else {
			libraries = append(libraries, info)
		}
	}

	sort.Slice(libraries, func(i, j int) bool { return libraries[i].Name < libraries[j].Name })
	return frameworks, libraries
}
