// Package genius provides the lyrics source. The Genius API resolves a
// track to its song page; the lyric text is extracted from the page body.
// Every failure path degrades to "no lyrics" for the pipeline.
package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
	"github.com/pathos-labs/pathos/backend/internal/core/ports"
)

const defaultBaseURL = "https://api.genius.com"

// Client is an HTTP client for the Genius API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

var _ ports.LyricsSource = (*Client)(nil)

// NewClient constructs a client with the given API access token.
func NewClient(httpClient *http.Client, accessToken string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{httpClient: httpClient, baseURL: defaultBaseURL, accessToken: accessToken}
}

// NewClientWithBaseURL overrides the API endpoint; used by tests.
func NewClientWithBaseURL(httpClient *http.Client, accessToken, baseURL string) *Client {
	c := NewClient(httpClient, accessToken)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type searchResponse struct {
	Response struct {
		Hits []struct {
			Result struct {
				URL          string `json:"url"`
				PrimaryTitle string `json:"full_title"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

// Lyrics returns the raw lyric text for a track, or "" when none is found.
func (c *Client) Lyrics(ctx context.Context, title, artist string) (string, error) {
	query := url.QueryEscape(title + " " + artist)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?q="+query, nil)
	if err != nil {
		return "", fmt.Errorf("genius adapter: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.ProviderError{Provider: "genius", Op: "search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &domain.ProviderError{Provider: "genius", Op: "search", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("genius adapter: decode search: %w", err)
	}
	if len(parsed.Response.Hits) == 0 {
		return "", nil
	}

	return c.fetchLyricsPage(ctx, parsed.Response.Hits[0].Result.URL)
}

var (
	lyricsContainer = regexp.MustCompile(`(?s)<div[^>]+data-lyrics-container="true"[^>]*>(.*?)</div>`)
	lineBreaks      = regexp.MustCompile(`(?i)<br\s*/?>`)
	htmlTags        = regexp.MustCompile(`<[^>]+>`)
)

func (c *Client) fetchLyricsPage(ctx context.Context, pageURL string) (string, error) {
	if pageURL == "" {
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("genius adapter: build page request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.ProviderError{Provider: "genius", Op: "page", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &domain.ProviderError{Provider: "genius", Op: "page", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", fmt.Errorf("genius adapter: read page: %w", err)
	}

	matches := lyricsContainer.FindAllStringSubmatch(string(body), -1)
	if len(matches) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, m := range matches {
		text := lineBreaks.ReplaceAllString(m[1], "\n")
		text = htmlTags.ReplaceAllString(text, "")
		b.WriteString(html.UnescapeString(text))
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}
