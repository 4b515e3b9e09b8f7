package main

import (
	"net/url"
	"strings"
)

// hosts matching any of these substrings are treated as CDN-served
var cdnHostPatterns = []string{
	"cdn.", "cloudflare.com", "jsdelivr.net", "googleapis.com",
	"gstatic.com", "akamaihd.net", "fastly.net", "bootstrapcdn.com",
	"cdnjs.com",
}

// stricter allow-list for the untrusted-domain flag: well-known CDNs and
// API hosts a third-party script may legitimately come from
var trustedHostPatterns = []string{
	"googleapis.com", "gstatic.com", "google-analytics.com",
	"googletagmanager.com", "jsdelivr.net", "cloudflare.com", "cdnjs.com",
	"unpkg.com", "jquery.com", "bootstrapcdn.com", "fastly.net",
	"akamaihd.net", "facebook.net", "hotjar.com", "stripe.com",
}

// classifier annotates reconciled resources with provenance flags. The host
// lists are injected so substitute tables stay testable; config may extend
// both at startup.
type classifier struct {
	documentHost string
	cdnPatterns  []string
	trusted      []string
	globals      map[string]struct{}
}

func newClassifier(capture *pageCapture, extraCDN, extraTrusted []string) *classifier {
	return &classifier{
		documentHost: capture.DocumentHost,
		cdnPatterns:  append(append([]string{}, cdnHostPatterns...), extraCDN...),
		trusted:      append(append([]string{}, trustedHostPatterns...), extraTrusted...),
		globals:      capture.globalSet(),
	}
}

// classify assigns provenance attributes to every resource in place. The
// same host string always yields the same verdict regardless of call order.
func (c *classifier) classify(resources []ScriptResource) {
	for i := range resources {
		c.classifyResource(&resources[i])
	}
}

func (c *classifier) classifyResource(r *ScriptResource) {
	if r.Source == inlineSource {
		// inline scripts execute in the document itself
		r.Host = c.documentHost
		r.FirstParty = true
		return
	}

	host, parsed := resolveHost(r.Source)
	r.Host = host

	// exact string equality, no suffix or wildcard matching; a resource
	// whose URL failed to parse is never first-party
	r.FirstParty = parsed && host == c.documentHost
	r.CDN = hostContainsAny(host, c.cdnPatterns)

	if !r.FirstParty {
		// an empty host cannot be vouched for
		r.UntrustedDomain = host == "" || !hostContainsAny(host, c.trusted)
		r.PotentiallyUnused = c.looksUnused(r.Source)
	}
}

// looksUnused reports whether no global identifier matching the script's
// filename exists on the page. A coarse heuristic: usage through module
// imports, closures, or side effects is invisible to it.
func (c *classifier) looksUnused(source string) bool {
	candidate := globalCandidate(source)
	if len(candidate) < 3 {
		return false
	}
	_, exists := c.globals[candidate]
	return !exists
}

// globalCandidate derives a candidate global-variable name from the final
// path segment of the URL: extension stripped, every character outside
// [A-Za-z0-9_$] removed.
func globalCandidate(source string) string {
	path := source
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.LastIndex(path, "."); i >= 0 {
		path = path[:i]
	}

	var b strings.Builder
	for _, ch := range path {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z',
			ch >= '0' && ch <= '9', ch == '_', ch == '$':
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// resolveHost parses the source URL and returns its host. A source that
// fails to parse falls back to the raw string and reports parsed=false.
func resolveHost(source string) (host string, parsed bool) {
	u, err := url.Parse(source)
	if err != nil {
		return source, false
	}
	return u.Host, true
}

// hostContainsAny reports whether the host matches any of the patterns by
// substring. Matching is case-sensitive: hosts arrive lower-cased from the
// browser and the pattern lists are kept lower-case.
func hostContainsAny(host string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(host, pattern) {
			return true
		}
	}
	return false
}
