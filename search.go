package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"googlemaps.github.io/maps"
)

// placesSearcher queries Google Places for businesses matching a search
// prompt and extracts their website URLs - it satisfies the extractor
// interface
type placesSearcher struct {
	searchPrompt string
}

// newPlacesSearcher creates a new placesSearcher instance
func newPlacesSearcher(searchPrompt string) *placesSearcher {
	return &placesSearcher{searchPrompt}
}

// extract queries Google Places with the specified search prompt and
// extracts company URLs from the place details
func (p *placesSearcher) extract(ctx context.Context) ([]string, error) {
	if p.searchPrompt == "" {
		return nil, nil
	}

	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is not set")
	}

	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	allPlaces := []maps.PlacesSearchResult{}

	// make a text query
	textReq := &maps.TextSearchRequest{Query: p.searchPrompt}
	for {
		res, err := client.TextSearch(ctx, textReq)
		if err != nil {
			return nil, fmt.Errorf("failed text search for %s: %w", p.searchPrompt, err)
		}

		allPlaces = append(allPlaces, res.Results...)

		if res.NextPageToken == "" {
			break
		}

		textReq.PageToken = res.NextPageToken

		time.Sleep(2 * time.Second) // required delay before next page
	}

	checkedDomains := map[string]bool{}
	urls := []string{}

	for _, place := range allPlaces {
		// get place details (needed for website data)
		details, err := client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
			PlaceID: place.PlaceID,
		})
		if err != nil {
			fmt.Printf("failed place details for %s (ID: %s): %v", place.Name, place.PlaceID, err)
			continue
		}

		if details.Website == "" {
			continue
		}

		site, err := newWebsite(details.Website)
		if err != nil {
			fmt.Printf("failed URL parsing for %s (ID: %s): %v", place.Name, place.PlaceID, err)
			continue
		}

		if checkedDomains[site.domain] {
			continue
		}

		urls = append(urls, site.scheme+"://"+site.domain+"/")
		checkedDomains[site.domain] = true
	}

	return urls, nil
}
