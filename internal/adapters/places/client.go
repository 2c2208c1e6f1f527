// Package places provides the points-of-interest provider backed by the
// Google Places JSON API.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
	"github.com/pathos-labs/pathos/backend/internal/core/ports"
)

const defaultBaseURL = "https://maps.googleapis.com"

// Client is an HTTP client for the places provider.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	maxRetries  int
	baseBackoff time.Duration
}

var _ ports.PlacesProvider = (*Client)(nil)

// NewClient constructs a client with the given API key.
func NewClient(httpClient *http.Client, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{httpClient: httpClient, baseURL: defaultBaseURL, apiKey: apiKey}
}

// NewClientWithBaseURL overrides the API endpoint; used by tests.
func NewClientWithBaseURL(httpClient *http.Client, apiKey, baseURL string) *Client {
	c := NewClient(httpClient, apiKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type placeResult struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Vicinity string `json:"vicinity"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Types            []string `json:"types"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	OpeningHours     *struct {
		OpenNow bool `json:"open_now"`
	} `json:"opening_hours"`
}

type nearbyResponse struct {
	Status  string        `json:"status"`
	Results []placeResult `json:"results"`
}

type detailsResponse struct {
	Status string      `json:"status"`
	Result placeResult `json:"result"`
}

// Nearby lists points of interest within radiusMeters of center.
func (c *Client) Nearby(ctx context.Context, center domain.Coordinate, radiusMeters float64) ([]domain.PlaceCandidate, error) {
	params := url.Values{
		"location": {fmt.Sprintf("%f,%f", center.Lat, center.Lng)},
		"radius":   {fmt.Sprintf("%.0f", radiusMeters)},
		"key":      {c.apiKey},
	}

	var parsed nearbyResponse
	if err := c.getJSON(ctx, "/maps/api/place/nearbysearch/json", params, &parsed); err != nil {
		return nil, &domain.ProviderError{Provider: "places", Op: "nearby", Err: err}
	}
	if parsed.Status != "OK" && parsed.Status != "ZERO_RESULTS" {
		return nil, &domain.ProviderError{Provider: "places", Op: "nearby", Err: fmt.Errorf("status %s", parsed.Status)}
	}

	candidates := make([]domain.PlaceCandidate, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		candidates = append(candidates, mapPlaceToDomain(r))
	}
	return candidates, nil
}

// Details fetches richer data for a single place.
func (c *Client) Details(ctx context.Context, placeID string) (domain.PlaceCandidate, error) {
	params := url.Values{
		"place_id": {placeID},
		"fields":   {"place_id,name,vicinity,geometry,types,rating,user_ratings_total,opening_hours"},
		"key":      {c.apiKey},
	}

	var parsed detailsResponse
	if err := c.getJSON(ctx, "/maps/api/place/details/json", params, &parsed); err != nil {
		return domain.PlaceCandidate{}, &domain.ProviderError{Provider: "places", Op: "details", Err: err}
	}
	if parsed.Status != "OK" {
		return domain.PlaceCandidate{}, &domain.ProviderError{Provider: "places", Op: "details", Err: fmt.Errorf("status %s", parsed.Status)}
	}
	return mapPlaceToDomain(parsed.Result), nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("places adapter: build request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places adapter: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("places adapter: decode response: %w", err)
	}
	return nil
}

func mapPlaceToDomain(r placeResult) domain.PlaceCandidate {
	candidate := domain.PlaceCandidate{
		ID:       r.PlaceID,
		Name:     r.Name,
		Vicinity: r.Vicinity,
		Location: domain.Coordinate{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		Types:    r.Types,
	}
	if r.Rating > 0 || r.UserRatingsTotal > 0 || r.OpeningHours != nil {
		info := &domain.RatingInfo{Rating: r.Rating, RatingCount: r.UserRatingsTotal}
		if r.OpeningHours != nil {
			open := r.OpeningHours.OpenNow
			info.OpenNow = &open
		}
		candidate.Rating = info
	}
	return candidate
}
