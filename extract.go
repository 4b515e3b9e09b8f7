package main

import "context"

// extractor defines the interface for extracting URLs from different sources
type extractor interface {
	extract(ctx context.Context) ([]string, error)
}

// extractWebsites collects target websites from every configured source
func extractWebsites(ctx context.Context, cfg *Config, searchPrompt, inputFile string, args []string) ([]*website, error) {
	sources := []extractor{
		newPlacesSearcher(searchPrompt),
		newCSVExtractor(inputFile),
		newArgsExtractor(args),
	}

	var urls []string
	for _, source := range sources {
		extracted, err := source.extract(ctx)
		if err != nil {
			return nil, err
		}
		urls = append(urls, extracted...)
	}

	return filterWebsites(urls, cfg.IgnoredDomains), nil
}

// argsExtractor yields URLs passed directly on the command line - it
// satisfies the extractor interface
type argsExtractor struct {
	urls []string
}

func newArgsExtractor(urls []string) *argsExtractor {
	return &argsExtractor{urls}
}

func (a *argsExtractor) extract(_ context.Context) ([]string, error) {
	return a.urls, nil
}
