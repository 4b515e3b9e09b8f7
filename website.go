package main

import (
	"fmt"
	"net/url"
	"strings"
)

type website struct {
	originalURL string
	scheme      string
	domain      string
}

// newWebsite takes in a raw URL, parses it and returns a website
// instance
func newWebsite(rawURL string) (*website, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %s: %w", rawURL, err)
	}

	if parsed.Host == "" {
		return nil, fmt.Errorf("URL missing host: %s", rawURL)
	}

	return &website{
		domain:      strings.ToLower(parsed.Host),
		scheme:      parsed.Scheme,
		originalURL: rawURL,
	}, nil
}

// isIgnored reports whether the given website matches any of the ignored
// patterns, or uses a scheme a browser cannot be pointed at
func (w *website) isIgnored(ignoredPatterns []string) bool {
	if w.scheme != "http" && w.scheme != "https" {
		return true
	}

	for _, pattern := range ignoredPatterns {
		if strings.Contains(w.domain, pattern) {
			return true
		}
	}

	return false
}

// filterWebsites converts raw URLs to websites and
// filters out duplicates/ignored domains
func filterWebsites(rawURLs, ignoredPatterns []string) []*website {
	websites := []*website{}
	seen := map[string]bool{}

	for _, url := range rawURLs {
		if url == "" {
			continue
		}

		website, err := newWebsite(url)
		if err != nil {
			fmt.Printf("⚠️ %v\n", err)
			continue
		}

		if seen[website.domain] || website.isIgnored(ignoredPatterns) {
			continue
		}

		seen[website.domain] = true
		websites = append(websites, website)
	}

	return websites
}
