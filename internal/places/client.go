// Package places resolves nearby points of interest around a property and
// annotates them with road or straight-line distance.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mkessler/plotmark/internal/geo"
)

const defaultNearbyURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

// Candidate is one point of interest returned by the search provider.
type Candidate struct {
	PlaceID  string
	Name     string
	Category string
	Location geo.Point
	Rating   float64
	Reviews  int
}

// SearchClient finds candidate places near a coordinate.
type SearchClient interface {
	Nearby(ctx context.Context, center geo.Point, category string, radiusMeters int) ([]Candidate, error)
}

// NearbyClient is a SearchClient backed by a Places-style HTTP API.
type NearbyClient struct {
	httpClient *http.Client
	apiKey     string

	// Overridable URL for testing.
	nearbyURL string
}

// NewNearbyClient creates a nearby-search client with the given API key.
func NewNearbyClient(apiKey string) (*NearbyClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("PLACES_API_KEY is required")
	}
	return &NearbyClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		nearbyURL:  defaultNearbyURL,
	}, nil
}

// nearbyResponse is the provider's nearby-search response.
type nearbyResponse struct {
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Types    []string
		Rating   float64 `json:"rating"`
		Reviews  int     `json:"user_ratings_total"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Nearby queries the provider for places of the given category within
// radiusMeters of center.
func (c *NearbyClient) Nearby(ctx context.Context, center geo.Point, category string, radiusMeters int) ([]Candidate, error) {
	params := url.Values{
		"location": {fmt.Sprintf("%.6f,%.6f", center.Lat, center.Lng)},
		"radius":   {fmt.Sprintf("%d", radiusMeters)},
		"type":     {category},
		"key":      {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nearbyURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = fmt.Errorf("%w (also failed to close body: %v)", err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	candidates := make([]Candidate, 0, len(result.Results))
	for _, r := range result.Results {
		candidates = append(candidates, Candidate{
			PlaceID:  r.PlaceID,
			Name:     r.Name,
			Category: category,
			Location: geo.Point{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			Rating:   r.Rating,
			Reviews:  r.Reviews,
		})
	}

	return candidates, nil
}
