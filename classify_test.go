package main

import "testing"

func testClassifier(documentHost string, globals ...string) *classifier {
	capture := &pageCapture{DocumentHost: documentHost, GlobalProps: globals}
	return newClassifier(capture, nil, nil)
}

func TestFirstPartyExactHostMatch(t *testing.T) {
	c := testClassifier("example.com")

	tests := []struct {
		source string
		want   bool
	}{
		{"https://example.com/app.js", true},
		{"https://www.example.com/app.js", false}, // no suffix matching
		{"https://evil-example.com/app.js", false},
		{"https://cdn.jsdelivr.net/lib.js", false},
	}

	for _, tt := range tests {
		r := ScriptResource{Source: tt.source}
		c.classifyResource(&r)
		if r.FirstParty != tt.want {
			t.Errorf("FirstParty(%q) = %v, want %v", tt.source, r.FirstParty, tt.want)
		}
	}
}

func TestHostPatternMatchIsCaseSensitive(t *testing.T) {
	if hostContainsAny("CDN.Example.com", cdnHostPatterns) {
		t.Error("mixed-case host must not match the lower-case pattern list")
	}
	if !hostContainsAny("cdn.example.com", cdnHostPatterns) {
		t.Error("lower-cased host should match")
	}
}

func TestCDNClassification(t *testing.T) {
	c := testClassifier("example.com")

	tests := []struct {
		source string
		want   bool
	}{
		{"https://cdn.jsdelivr.net/lib.js", true},
		{"https://ajax.googleapis.com/jquery.js", true},
		{"https://cdn.shopify.com/bundle.js", true}, // "cdn." substring
		{"https://example.org/app.js", false},
	}

	for _, tt := range tests {
		r := ScriptResource{Source: tt.source}
		c.classifyResource(&r)
		if r.CDN != tt.want {
			t.Errorf("CDN(%q) = %v, want %v", tt.source, r.CDN, tt.want)
		}
	}
}

func TestUntrustedDomain(t *testing.T) {
	c := testClassifier("example.com")

	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"trusted cdn", "https://cdn.jsdelivr.net/lib.js", false},
		{"unknown third party", "https://sketchy.io/track.js", true},
		{"first party never untrusted", "https://example.com/app.js", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ScriptResource{Source: tt.source}
			c.classifyResource(&r)
			if r.UntrustedDomain != tt.want {
				t.Errorf("UntrustedDomain(%q) = %v, want %v", tt.source, r.UntrustedDomain, tt.want)
			}
		})
	}
}

func TestEmptyHostIsUntrusted(t *testing.T) {
	c := testClassifier("example.com")

	r := ScriptResource{Source: "not-a-url"}
	c.classifyResource(&r)

	if r.FirstParty {
		t.Error("resource without a host must not be first-party")
	}
	if !r.UntrustedDomain {
		t.Error("resource without a resolvable host must be untrusted")
	}
}

func TestUnparsableURLFallsBackToRawHost(t *testing.T) {
	c := testClassifier("example.com")

	// control characters make url.Parse fail
	r := ScriptResource{Source: "https://bad\x7f.com/x.js"}
	c.classifyResource(&r)

	if r.Host != "https://bad\x7f.com/x.js" {
		t.Errorf("expected raw source as host fallback, got %q", r.Host)
	}
	if r.FirstParty {
		t.Error("unparsable source must not be first-party")
	}
}

func TestClassificationDeterminism(t *testing.T) {
	c := testClassifier("example.com")

	sources := []string{
		"https://cdn.jsdelivr.net/lib.js",
		"https://example.com/app.js",
		"https://sketchy.io/track.js",
	}

	first := make([]ScriptResource, len(sources))
	for i, s := range sources {
		first[i] = ScriptResource{Source: s}
		c.classifyResource(&first[i])
	}

	// reversed call order must yield the same verdicts
	for i := len(sources) - 1; i >= 0; i-- {
		r := ScriptResource{Source: sources[i]}
		c.classifyResource(&r)
		if r.FirstParty != first[i].FirstParty || r.CDN != first[i].CDN || r.UntrustedDomain != first[i].UntrustedDomain {
			t.Errorf("classification of %q changed with call order", sources[i])
		}
	}
}

func TestGlobalCandidate(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"https://cdn.jsdelivr.net/lodash.min.js", "lodashmin"},
		{"https://example.com/js/jquery-3.4.0.js", "jquery340"},
		{"https://example.com/app.js?v=2", "app"},
		{"https://example.com/vendor/_underscore.js", "_underscore"},
		{"https://example.com/", ""},
	}

	for _, tt := range tests {
		if got := globalCandidate(tt.source); got != tt.want {
			t.Errorf("globalCandidate(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestPotentiallyUnused(t *testing.T) {
	c := testClassifier("example.com", "moment")

	present := ScriptResource{Source: "https://cdn.jsdelivr.net/moment.js"}
	c.classifyResource(&present)
	if present.PotentiallyUnused {
		t.Error("script with a matching global must not be flagged unused")
	}

	absent := ScriptResource{Source: "https://cdn.jsdelivr.net/leaflet.js"}
	c.classifyResource(&absent)
	if !absent.PotentiallyUnused {
		t.Error("third-party script without a matching global should be flagged unused")
	}

	// identifiers shorter than 3 characters are never probed
	short := ScriptResource{Source: "https://cdn.jsdelivr.net/d3.js"}
	c.classifyResource(&short)
	if short.PotentiallyUnused {
		t.Error("candidate shorter than 3 characters must not be flagged")
	}

	// first-party scripts are exempt from the heuristic
	firstParty := ScriptResource{Source: "https://example.com/nothing.js"}
	c.classifyResource(&firstParty)
	if firstParty.PotentiallyUnused {
		t.Error("first-party script must never be flagged unused")
	}
}

func TestInlineResourceIsFirstParty(t *testing.T) {
	c := testClassifier("example.com")

	r := ScriptResource{Source: inlineSource}
	c.classifyResource(&r)

	if !r.FirstParty || r.Host != "example.com" {
		t.Errorf("inline resource should be first-party on the document host, got host=%q firstParty=%v", r.Host, r.FirstParty)
	}
}
