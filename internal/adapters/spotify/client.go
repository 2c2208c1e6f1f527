// Package spotify provides the track-signal source. A free-text query is
// resolved to the provider's top hit plus its audio descriptors; when the
// audio-features endpoint is unavailable the adapter synthesizes a
// pseudo-signal from track metadata and, when possible, the preview audio.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
	"github.com/pathos-labs/pathos/backend/internal/core/ports"
)

const (
	defaultBaseURL  = "https://api.spotify.com"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
)

// Client is an HTTP client for the Spotify Web API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

var _ ports.TrackSource = (*Client)(nil)

// NewClient constructs a client using the client-credentials flow; the
// returned client refreshes its token transparently.
func NewClient(clientID, clientSecret string) *Client {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     defaultTokenURL,
	}
	httpClient := conf.Client(context.Background())
	httpClient.Timeout = 15 * time.Second
	maxRetries, baseBackoff := getRetryConfig()
	return &Client{httpClient: httpClient, baseURL: defaultBaseURL, maxRetries: maxRetries, baseBackoff: baseBackoff}
}

// NewClientWithHTTP wires a pre-built HTTP client and base URL; used by tests.
func NewClientWithHTTP(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	maxRetries, baseBackoff := getRetryConfig()
	return &Client{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/"), maxRetries: maxRetries, baseBackoff: baseBackoff}
}

// SearchTrack resolves a query to the top search hit and its TrackSignal.
// No hits fails with domain.ErrTrackNotFound; transport and auth failures
// surface as *domain.ProviderError.
func (c *Client) SearchTrack(ctx context.Context, query string) (domain.Track, domain.TrackSignal, error) {
	searchURL := fmt.Sprintf("%s/v1/search?q=%s&type=track&limit=1", c.baseURL, url.QueryEscape(query))

	var parsed searchResponse
	if err := c.getJSON(ctx, searchURL, &parsed); err != nil {
		return domain.Track{}, domain.TrackSignal{}, &domain.ProviderError{Provider: "spotify", Op: "search", Err: err}
	}
	if len(parsed.Tracks.Items) == 0 {
		return domain.Track{}, domain.TrackSignal{}, domain.ErrTrackNotFound
	}

	track := mapTrackToDomain(parsed.Tracks.Items[0])

	signal, err := c.audioFeatures(ctx, track)
	if err != nil {
		log.Printf("WARN spotify: audio features unavailable for %s, using pseudo-signal: %v", track.ID, err)
		signal = c.pseudoSignal(track)
	}

	return track, signal, nil
}

func (c *Client) audioFeatures(ctx context.Context, track domain.Track) (domain.TrackSignal, error) {
	featuresURL := fmt.Sprintf("%s/v1/audio-features/%s", c.baseURL, track.ID)

	var features audioFeaturesResponse
	if err := c.getJSON(ctx, featuresURL, &features); err != nil {
		return domain.TrackSignal{}, err
	}
	if allFeaturesZero(features) {
		return domain.TrackSignal{}, fmt.Errorf("spotify adapter: empty audio features")
	}

	return mapFeaturesToSignal(features, track), nil
}

// pseudoSignal falls back to metadata, using preview-audio RMS as the energy
// estimate when a preview exists.
func (c *Client) pseudoSignal(track domain.Track) domain.TrackSignal {
	energyHint := -1.0
	if track.PreviewURL != "" {
		if energy, err := analyzePreviewFunc(c.httpClient, track.PreviewURL); err == nil {
			energyHint = energy
		} else {
			log.Printf("WARN spotify: preview analysis failed for %s: %v", track.ID, err)
		}
	}
	return domain.PseudoSignal(track, energyHint)
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("spotify adapter: build request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spotify adapter: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("spotify adapter: decode response: %w", err)
	}
	return nil
}
