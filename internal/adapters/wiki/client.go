// Package wiki provides the encyclopedia provider backed by the MediaWiki
// API. Lookups are cached, relevance-checked, language-aware, and retried;
// any failure degrades to "no summary" rather than aborting the caller.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
	"github.com/pathos-labs/pathos/backend/internal/core/ports"
)

const defaultEndpoint = "https://{lang}.wikipedia.org/w/api.php"

const (
	maxRetries       = 3
	retryDelay       = time.Second
	searchTimeout    = 5 * time.Second
	maxSearchResults = 3
	cacheKeyMaxLen   = 100
)

var supportedLanguages = map[string]struct{}{
	"en": {}, "es": {}, "fr": {}, "de": {}, "it": {}, "ja": {}, "zh": {}, "ko": {},
}

const defaultLanguage = "en"

// Client implements ports.EncyclopediaProvider.
type Client struct {
	httpClient *http.Client
	cache      ports.Cache
	endpoint   string // template with a {lang} placeholder
}

var _ ports.EncyclopediaProvider = (*Client)(nil)

// NewClient constructs a client. The cache is required; pass endpoint "" for
// the public Wikipedia API.
func NewClient(httpClient *http.Client, cache ports.Cache, endpoint string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{httpClient: httpClient, cache: cache, endpoint: endpoint}
}

// Lookup finds a relevant encyclopedia summary for a named place. It returns
// nil with no error when no candidate page passes the relevance gate; a
// summary is never fabricated.
func (c *Client) Lookup(ctx context.Context, name, vicinity, language string) (*domain.WikiSummary, error) {
	if name == "" || vicinity == "" {
		return nil, nil
	}

	lang := normalizeLanguage(language)
	key := cacheKey(lang, name, vicinity)

	if cached, ok := c.cache.Get(ctx, key); ok {
		var summary domain.WikiSummary
		if err := json.Unmarshal(cached, &summary); err == nil {
			return &summary, nil
		}
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		summary, err := c.lookupOnce(ctx, name, vicinity, lang)
		if err == nil {
			if summary != nil {
				if encoded, marshalErr := json.Marshal(summary); marshalErr == nil {
					c.cache.Set(ctx, key, encoded)
				}
			}
			return summary, nil
		}

		lastErr = err
		if attempt == maxRetries {
			break
		}
		log.Printf("WARN wiki: retrying lookup for %q, attempt %d: %v", name, attempt+1, err)
		if err := sleepWithContext(ctx, retryDelay*time.Duration(attempt)); err != nil {
			return nil, err
		}
	}

	return nil, &domain.ProviderError{Provider: "wiki", Op: "lookup", Err: lastErr}
}

// lookupOnce runs one search pass: search (bounded by the search timeout),
// then walk the hits in rank order until one passes the relevance gate.
func (c *Client) lookupOnce(ctx context.Context, name, vicinity, lang string) (*domain.WikiSummary, error) {
	searchCtx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	titles, err := c.search(searchCtx, lang, name+" "+vicinity)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		log.Printf("WARN wiki: no results for %q in %s", name, lang)
		return nil, nil
	}

	for _, title := range titles {
		page, err := c.fetchPage(ctx, lang, title)
		if err != nil {
			log.Printf("WARN wiki: page %q: %v", title, err)
			continue
		}

		relevant, score := verifyRelevance(name, page.extract, vicinity, lang)
		if !relevant {
			continue
		}

		return &domain.WikiSummary{
			Summary:        extractRelevantInfo(page.extract, lang),
			URL:            page.url,
			Language:       lang,
			RelevanceScore: score,
		}, nil
	}

	return nil, nil
}

type wikiPage struct {
	extract string
	url     string
}

func (c *Client) search(ctx context.Context, lang, query string) ([]string, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {fmt.Sprintf("%d", maxSearchResults)},
		"format":   {"json"},
	}

	var parsed struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := c.get(ctx, lang, params, &parsed); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(parsed.Query.Search))
	for _, hit := range parsed.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

func (c *Client) fetchPage(ctx context.Context, lang, title string) (wikiPage, error) {
	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts|info"},
		"explaintext": {"1"},
		"exintro":     {"1"},
		"inprop":      {"url"},
		"redirects":   {"1"},
		"titles":      {title},
		"format":      {"json"},
	}

	var parsed struct {
		Query struct {
			Pages map[string]struct {
				Extract string `json:"extract"`
				FullURL string `json:"fullurl"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.get(ctx, lang, params, &parsed); err != nil {
		return wikiPage{}, err
	}

	for _, page := range parsed.Query.Pages {
		if page.Extract != "" {
			return wikiPage{extract: page.Extract, url: page.FullURL}, nil
		}
	}
	return wikiPage{}, fmt.Errorf("wiki: no extract for %q", title)
}

func (c *Client) get(ctx context.Context, lang string, params url.Values, dest any) error {
	endpoint := strings.ReplaceAll(c.endpoint, "{lang}", lang)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("wiki: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wiki: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wiki: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("wiki: decode response: %w", err)
	}
	return nil
}

func normalizeLanguage(language string) string {
	lang := strings.ToLower(language)
	if len(lang) > 2 {
		lang = lang[:2]
	}
	if _, ok := supportedLanguages[lang]; !ok {
		return defaultLanguage
	}
	return lang
}

// cacheKey normalizes (language, name, vicinity) into a bounded key.
func cacheKey(lang, name, vicinity string) string {
	raw := strings.ToLower("wiki_" + lang + "_" + name + "_" + vicinity)
	var b strings.Builder
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	key := b.String()
	if len(key) > cacheKeyMaxLen {
		key = key[:cacheKeyMaxLen]
	}
	return key
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("wiki: lookup canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
