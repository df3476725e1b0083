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

const defaultDistanceURL = "https://maps.googleapis.com/maps/api/distancematrix/json"

// DistanceClient returns the road distance in meters between two points.
type DistanceClient interface {
	RoadDistance(ctx context.Context, from, to geo.Point) (float64, error)
}

// RouteClient is a DistanceClient backed by a distance-matrix-style HTTP API.
type RouteClient struct {
	httpClient *http.Client
	apiKey     string

	// Overridable URL for testing.
	distanceURL string
}

// NewRouteClient creates a road-distance client with the given API key.
func NewRouteClient(apiKey string) (*RouteClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("PLACES_API_KEY is required")
	}
	return &RouteClient{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		distanceURL: defaultDistanceURL,
	}, nil
}

// distanceResponse is the provider's distance-matrix response.
type distanceResponse struct {
	Rows []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// RoadDistance returns the driving distance in meters between from and to.
func (c *RouteClient) RoadDistance(ctx context.Context, from, to geo.Point) (float64, error) {
	params := url.Values{
		"origins":      {fmt.Sprintf("%.6f,%.6f", from.Lat, from.Lng)},
		"destinations": {fmt.Sprintf("%.6f,%.6f", to.Lat, to.Lng)},
		"key":          {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.distanceURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = fmt.Errorf("%w (also failed to close body: %v)", err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result distanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Rows) == 0 || len(result.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("empty distance matrix")
	}
	el := result.Rows[0].Elements[0]
	if el.Status != "OK" {
		return 0, fmt.Errorf("distance element status %q", el.Status)
	}

	return el.Distance.Value, nil
}
