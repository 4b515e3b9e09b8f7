package main

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parseDocument extracts declared script tags and the CSP meta declaration
// from the captured page HTML, filling in the capture's DOM-derived fields.
func parseDocument(capture *pageCapture, html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("failed to parse captured html: %w", err)
	}

	capture.Scripts = parseScriptTags(doc)
	capture.HasCSPMeta = hasCSPMetaTag(doc)
	return nil
}

// parseScriptTags collects every script element with its src and declared
// loading-mode attributes; elements without src keep their inline body.
func parseScriptTags(doc *goquery.Document) []scriptTag {
	var tags []scriptTag

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		tag := scriptTag{}

		tag.Src, _ = s.Attr("src")
		_, tag.Async = s.Attr("async")
		_, tag.Defer = s.Attr("defer")

		if t, ok := s.Attr("type"); ok {
			tag.Module = strings.EqualFold(strings.TrimSpace(t), "module")
		}

		if tag.Src == "" {
			tag.Text = s.Text()
		}

		tags = append(tags, tag)
	})

	return tags
}

// hasCSPMetaTag reports whether the document declares a Content-Security-Policy
// meta tag, with a secondary check for the non-standard name-attribute marker.
// Header-delivered CSP is not visible here.
func hasCSPMetaTag(doc *goquery.Document) bool {
	found := false

	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if equiv, ok := s.Attr("http-equiv"); ok && strings.EqualFold(equiv, "Content-Security-Policy") {
			found = true
			return false
		}
		if name, ok := s.Attr("name"); ok && strings.EqualFold(name, "Content-Security-Policy") {
			found = true
			return false
		}
		return true
	})

	return found
}
