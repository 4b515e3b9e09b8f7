package main

import (
	"net/url"
	"strings"
)

// script file extensions recognised when timing entries lack an initiator type
var scriptExtensions = []string{".js", ".mjs", ".cjs"}

// reconcileResources merges browser resource-timing entries with declared
// script tags into one deduplicated list of observed script resources.
// Entries without a measurable size carry no signal and are dropped. The
// output order is not significant; consumers impose their own sort.
func reconcileResources(capture *pageCapture) []ScriptResource {
	entries := dedupeByName(filterScriptEntries(capture.Resources))

	matched := make(map[string]bool, len(entries))
	var resources []ScriptResource

	for _, entry := range entries {
		res, ok := resourceFromEntry(entry)
		if !ok {
			continue
		}
		matched[entry.Name] = true
		resources = append(resources, res)
	}

	// second pass: declared tags whose src was not matched by any kept
	// timing entry (blocked loads, evicted entries) are matched by exact or
	// resolved-absolute-URL equality against the full timing list
	for _, tag := range capture.Scripts {
		if tag.Src == "" {
			continue
		}
		abs := resolveURL(capture.DocumentURL, tag.Src)
		if matched[tag.Src] || matched[abs] {
			continue
		}
		for _, entry := range capture.Resources {
			if entry.Name != tag.Src && entry.Name != abs {
				continue
			}
			if res, ok := resourceFromEntry(entry); ok {
				matched[entry.Name] = true
				resources = append(resources, res)
			}
			break
		}
	}

	attachTagAttributes(resources, capture)

	// inline script tags have no timing entry; their byte length is the
	// measurable size
	for _, tag := range capture.Scripts {
		if tag.Src != "" || len(tag.Text) == 0 {
			continue
		}
		resources = append(resources, ScriptResource{
			Source:   inlineSource,
			Size:     int64(len(tag.Text)),
			GzipSize: int64(len(tag.Text)),
			Async:    tag.Async,
			Deferred: tag.Defer,
			Module:   tag.Module,
			evalText: tag.Text,
		})
	}

	return resources
}

// filterScriptEntries keeps timing entries that plausibly represent scripts:
// script initiator, a script extension in the path or query, or a name
// carrying a JavaScript content-type hint.
func filterScriptEntries(entries []resourceTimingEntry) []resourceTimingEntry {
	var kept []resourceTimingEntry
	for _, e := range entries {
		if isScriptEntry(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

func isScriptEntry(e resourceTimingEntry) bool {
	if e.InitiatorType == "script" {
		return true
	}

	name := strings.ToLower(e.Name)
	path := name
	query := ""
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		path, query = name[:i], name[i:]
	}

	for _, ext := range scriptExtensions {
		if strings.HasSuffix(path, ext) || strings.Contains(query, ext) {
			return true
		}
	}

	return strings.Contains(name, "javascript")
}

// dedupeByName groups entries by resource name, keeping the one with the
// larger transferred size or larger decoded-body size. Larger measurements
// are assumed more complete than partial or cached entries.
func dedupeByName(entries []resourceTimingEntry) []resourceTimingEntry {
	index := make(map[string]int, len(entries))
	var deduped []resourceTimingEntry

	for _, e := range entries {
		i, seen := index[e.Name]
		if !seen {
			index[e.Name] = len(deduped)
			deduped = append(deduped, e)
			continue
		}
		if betterMeasurement(e, deduped[i]) {
			deduped[i] = e
		}
	}

	return deduped
}

func betterMeasurement(a, b resourceTimingEntry) bool {
	if a.TransferSize != b.TransferSize {
		return a.TransferSize > b.TransferSize
	}
	return a.DecodedBodySize > b.DecodedBodySize
}

// resourceFromEntry resolves sizes and timings for one kept entry. Entries
// whose resolved uncompressed size is 0 are discarded.
func resourceFromEntry(e resourceTimingEntry) (ScriptResource, bool) {
	size := firstPositive(e.DecodedBodySize, e.EncodedBodySize, e.TransferSize)
	if size == 0 {
		return ScriptResource{}, false
	}
	gzipSize := firstPositive(e.TransferSize, e.EncodedBodySize, e.DecodedBodySize)

	loadTime := e.ResponseEnd - e.FetchStart
	if loadTime < 0 {
		loadTime = 0
	}
	parseTime := e.Duration - loadTime
	if parseTime < 0 {
		parseTime = 0
	}

	return ScriptResource{
		Source:    e.Name,
		Size:      size,
		GzipSize:  gzipSize,
		LoadTime:  loadTime,
		ParseTime: parseTime,
	}, true
}

// firstPositive returns the first positive candidate, keeping the fallback
// order auditable in one place. Browsers zero out sizes for cross-origin
// resources without timing-allow-origin, so every candidate may be missing.
func firstPositive(candidates ...int64) int64 {
	for _, c := range candidates {
		if c > 0 {
			return c
		}
	}
	return 0
}

// attachTagAttributes copies declared async/defer/module attributes onto the
// matching resources. Resources never observed as tags (dynamically injected
// and removed) keep the false defaults.
func attachTagAttributes(resources []ScriptResource, capture *pageCapture) {
	for i := range resources {
		for _, tag := range capture.Scripts {
			if tag.Src == "" {
				continue
			}
			if tag.Src != resources[i].Source && resolveURL(capture.DocumentURL, tag.Src) != resources[i].Source {
				continue
			}
			resources[i].Async = tag.Async
			resources[i].Deferred = tag.Defer
			resources[i].Module = tag.Module
			break
		}
	}
}

// resolveURL resolves ref against base, returning ref unchanged when either
// side fails to parse.
func resolveURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
