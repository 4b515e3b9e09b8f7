package main

import "testing"

func TestIsScriptEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry resourceTimingEntry
		want  bool
	}{
		{"script initiator", resourceTimingEntry{Name: "https://a.com/x", InitiatorType: "script"}, true},
		{"js extension", resourceTimingEntry{Name: "https://a.com/app.js", InitiatorType: "link"}, true},
		{"mjs extension", resourceTimingEntry{Name: "https://a.com/app.mjs"}, true},
		{"extension with query", resourceTimingEntry{Name: "https://a.com/app.js?v=3"}, true},
		{"extension in query", resourceTimingEntry{Name: "https://a.com/load?file=x.js"}, true},
		{"javascript content hint", resourceTimingEntry{Name: "https://a.com/gen?type=javascript"}, true},
		{"stylesheet", resourceTimingEntry{Name: "https://a.com/style.css", InitiatorType: "link"}, false},
		{"image", resourceTimingEntry{Name: "https://a.com/logo.png", InitiatorType: "img"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isScriptEntry(tt.entry); got != tt.want {
				t.Errorf("isScriptEntry(%q) = %v, want %v", tt.entry.Name, got, tt.want)
			}
		})
	}
}

func TestDedupeKeepsLargerMeasurement(t *testing.T) {
	capture := &pageCapture{
		DocumentURL:  "https://example.com/",
		DocumentHost: "example.com",
		Resources: []resourceTimingEntry{
			{Name: "https://example.com/app.js", InitiatorType: "script", TransferSize: 100, DecodedBodySize: 500},
			{Name: "https://example.com/app.js", InitiatorType: "script", TransferSize: 2000, DecodedBodySize: 9000},
		},
	}

	resources := reconcileResources(capture)
	if len(resources) != 1 {
		t.Fatalf("expected 1 resource after dedupe, got %d", len(resources))
	}
	if resources[0].Size != 9000 {
		t.Errorf("expected larger-transfer entry kept (size 9000), got %d", resources[0].Size)
	}
	if resources[0].GzipSize != 2000 {
		t.Errorf("expected gzip size 2000, got %d", resources[0].GzipSize)
	}
}

func TestDedupeTieBreaksOnDecodedSize(t *testing.T) {
	entries := []resourceTimingEntry{
		{Name: "a.js", TransferSize: 100, DecodedBodySize: 200},
		{Name: "a.js", TransferSize: 100, DecodedBodySize: 900},
	}

	deduped := dedupeByName(entries)
	if len(deduped) != 1 || deduped[0].DecodedBodySize != 900 {
		t.Fatalf("expected entry with decoded size 900 kept, got %+v", deduped)
	}
}

func TestSizeFallbackChain(t *testing.T) {
	tests := []struct {
		name     string
		entry    resourceTimingEntry
		wantSize int64
		wantGzip int64
	}{
		{"all present", resourceTimingEntry{DecodedBodySize: 500, EncodedBodySize: 300, TransferSize: 320}, 500, 320},
		{"decoded missing", resourceTimingEntry{EncodedBodySize: 300, TransferSize: 320}, 300, 320},
		{"only transfer", resourceTimingEntry{TransferSize: 320}, 320, 320},
		{"only decoded", resourceTimingEntry{DecodedBodySize: 500}, 500, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := resourceFromEntry(tt.entry)
			if !ok {
				t.Fatal("expected resource to be kept")
			}
			if res.Size != tt.wantSize || res.GzipSize != tt.wantGzip {
				t.Errorf("got size=%d gzip=%d, want size=%d gzip=%d", res.Size, res.GzipSize, tt.wantSize, tt.wantGzip)
			}
		})
	}
}

func TestZeroSizeResourceDropped(t *testing.T) {
	capture := &pageCapture{
		DocumentURL: "https://example.com/",
		Resources: []resourceTimingEntry{
			{Name: "https://example.com/empty.js", InitiatorType: "script"},
			{Name: "https://example.com/real.js", InitiatorType: "script", DecodedBodySize: 100},
		},
	}

	resources := reconcileResources(capture)
	if len(resources) != 1 {
		t.Fatalf("expected 1 resource, got %d", len(resources))
	}
	for _, r := range resources {
		if r.Size <= 0 {
			t.Errorf("resource %s has size %d, want > 0", r.Source, r.Size)
		}
	}
}

func TestParseTimeNeverNegative(t *testing.T) {
	res, ok := resourceFromEntry(resourceTimingEntry{
		Name:            "a.js",
		DecodedBodySize: 100,
		FetchStart:      10,
		ResponseEnd:     100,
		Duration:        50, // shorter than the network window
	})
	if !ok {
		t.Fatal("expected resource to be kept")
	}
	if res.ParseTime < 0 {
		t.Errorf("parse time %f is negative", res.ParseTime)
	}
}

func TestSecondPassTagMatch(t *testing.T) {
	// the timing entry was not classified as a script, but a declared tag
	// references it by relative src
	capture := &pageCapture{
		DocumentURL: "https://example.com/page/",
		Resources: []resourceTimingEntry{
			{Name: "https://example.com/page/loader", InitiatorType: "other", DecodedBodySize: 700},
		},
		Scripts: []scriptTag{{Src: "loader", Async: true}},
	}

	resources := reconcileResources(capture)
	if len(resources) != 1 {
		t.Fatalf("expected 1 resource from second-pass match, got %d", len(resources))
	}
	if resources[0].Size != 700 {
		t.Errorf("expected size 700, got %d", resources[0].Size)
	}
	if !resources[0].Async {
		t.Error("expected declared async attribute attached")
	}
}

func TestAttributesDefaultFalseWithoutTag(t *testing.T) {
	capture := &pageCapture{
		DocumentURL: "https://example.com/",
		Resources: []resourceTimingEntry{
			{Name: "https://example.com/injected.js", InitiatorType: "script", DecodedBodySize: 10},
		},
	}

	resources := reconcileResources(capture)
	if len(resources) != 1 {
		t.Fatalf("expected 1 resource, got %d", len(resources))
	}
	r := resources[0]
	if r.Async || r.Deferred || r.Module {
		t.Errorf("expected false loading-mode defaults, got async=%v defer=%v module=%v", r.Async, r.Deferred, r.Module)
	}
}

func TestInlineScriptsIncluded(t *testing.T) {
	capture := &pageCapture{
		DocumentURL: "https://example.com/",
		Scripts: []scriptTag{
			{Text: "console.log('hi')"},
			{Text: ""}, // empty inline tag carries no signal
		},
	}

	resources := reconcileResources(capture)
	if len(resources) != 1 {
		t.Fatalf("expected 1 inline resource, got %d", len(resources))
	}
	if resources[0].Source != inlineSource {
		t.Errorf("expected source %q, got %q", inlineSource, resources[0].Source)
	}
	if resources[0].Size != int64(len("console.log('hi')")) {
		t.Errorf("expected inline size to match body length, got %d", resources[0].Size)
	}
}

func TestFirstPositive(t *testing.T) {
	if got := firstPositive(0, 0, 7); got != 7 {
		t.Errorf("firstPositive(0,0,7) = %d, want 7", got)
	}
	if got := firstPositive(3, 9); got != 3 {
		t.Errorf("firstPositive(3,9) = %d, want 3", got)
	}
	if got := firstPositive(0, 0); got != 0 {
		t.Errorf("firstPositive(0,0) = %d, want 0", got)
	}
}
