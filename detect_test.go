package main

import (
	"strings"
	"testing"
)

func TestBuildDependencyListsSplitsAndSorts(t *testing.T) {
	results := []probeResult{
		{Name: "React", Version: "18.2.0"},
		{Name: "Moment.js", Version: "2.29.1"},
		{Name: "jQuery", Version: "3.4.0"},
		{Name: "Axios", Version: ""},
	}

	frameworks, libraries := buildDependencyLists(results, builtinDetectors)

	if len(frameworks) != 1 || frameworks[0].Name != "React" {
		t.Fatalf("expected one framework (React), got %+v", frameworks)
	}
	if len(libraries) != 3 {
		t.Fatalf("expected 3 libraries, got %d", len(libraries))
	}

	// lexicographic order by name
	want := []string{"Axios", "Moment.js", "jQuery"}
	for i, name := range want {
		if libraries[i].Name != name {
			t.Errorf("libraries[%d] = %q, want %q", i, libraries[i].Name, name)
		}
	}

	for _, d := range append(frameworks, libraries...) {
		if !d.Detected {
			t.Errorf("dependency %s not marked detected", d.Name)
		}
	}
}

func TestBuildDependencyListsIgnoresUnknownAndDuplicates(t *testing.T) {
	results := []probeResult{
		{Name: "jQuery", Version: "3.4.0"},
		{Name: "jQuery", Version: "2.2.4"}, // duplicate, first wins
		{Name: "NotInTable", Version: "1.0"},
	}

	frameworks, libraries := buildDependencyLists(results, builtinDetectors)
	if len(frameworks) != 0 {
		t.Errorf("expected no frameworks, got %+v", frameworks)
	}
	if len(libraries) != 1 {
		t.Fatalf("expected 1 library, got %d", len(libraries))
	}
	if libraries[0].Version != "3.4.0" {
		t.Errorf("expected first detection to win, got version %q", libraries[0].Version)
	}
}

func TestBuildProbeRunnerEmbedsTable(t *testing.T) {
	runner, err := buildProbeRunner(builtinDetectors)
	if err != nil {
		t.Fatalf("buildProbeRunner: %v", err)
	}

	for _, d := range builtinDetectors {
		if !strings.Contains(runner, `"`+d.Name+`"`) {
			t.Errorf("runner missing detector %q", d.Name)
		}
	}

	// probes run under per-entry try/catch so one throwing getter cannot
	// abort the pass
	if !strings.Contains(runner, "try") || !strings.Contains(runner, "catch") {
		t.Error("runner must wrap probes in try/catch")
	}
}

func TestCustomDetectorsAppended(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CustomDetectors = []detector{
		{Name: "Acme Widgets", Probe: "!!window.AcmeWidgets", Version: "window.AcmeWidgets.version"},
	}

	table := cfg.detectorTable()
	if len(table) != len(builtinDetectors)+1 {
		t.Fatalf("expected %d detectors, got %d", len(builtinDetectors)+1, len(table))
	}
	if table[len(table)-1].Name != "Acme Widgets" {
		t.Error("custom detector must be appended after the built-in table")
	}

	// appending must not mutate the built-in registry
	if builtinDetectors[len(builtinDetectors)-1].Name == "Acme Widgets" {
		t.Error("built-in detector table was mutated")
	}
}

func TestUnderscoreLodashExclusion(t *testing.T) {
	var lodash, underscore *detector
	for i := range builtinDetectors {
		switch builtinDetectors[i].Name {
		case "Lodash":
			lodash = &builtinDetectors[i]
		case "Underscore.js":
			underscore = &builtinDetectors[i]
		}
	}

	if lodash == nil || underscore == nil {
		t.Fatal("expected both Lodash and Underscore.js detectors in the table")
	}

	// the shared `_` global is attributed to Underscore only when the
	// Lodash-specific member is absent
	if !strings.Contains(underscore.Probe, "cloneDeep") || !strings.Contains(underscore.Probe, "!==") {
		t.Error("Underscore probe must exclude the Lodash-specific global")
	}
}
