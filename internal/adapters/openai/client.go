// Package openai provides the generative reasoning adapter. The model is
// constrained to return one JSON object; the response is decoded into the
// permissive domain.TrailDraft and normalized by the core.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
	"github.com/pathos-labs/pathos/backend/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-3.5-turbo"
	defaultTimeout = 60 * time.Second
)

const systemPrompt = `You are Pathos, an AI trail designer that crafts personalized walking experiences by translating musical characteristics into physical journeys. You create meaningful connections between musical elements and geographical features, ensuring each trail tells a story that resonates with the song's essence.

When designing trails:
1. Translate tempo into trail pacing; use elevation changes to mirror musical crescendos; match terrain complexity with musical complexity.
2. Incorporate lyrical themes: locations, natural features, time of day, weather and seasons.
3. Match trail intensity with the song's emotional intensity; create contemplative spaces for introspective moments.
4. Trails must be circular, returning to the start point, within reasonable walking distance (2-10km).

Respond with ONLY a valid JSON object of this shape:
{
  "description": "narrative connecting the music to the trail",
  "technicalDetails": {
    "recommendedDistance": <number, km, 2-10>,
    "estimatedDuration": <number, minutes, 15-120>,
    "recommendedPace": <number, km/h, 3-6>,
    "terrainType": "<description of terrain variations>",
    "elevationChange": <number, meters, 0-100>
  },
  "waypoints": [[lat, lng], ...] forming a circular route,
  "highlights": [{"point": [lat, lng], "name": "...", "description": "...", "musicalConnection": "..."}]
}
Choose 3-5 highlights, selected ONLY from the provided nearby places. Never invent places.`

// Client is an HTTP client for a chat-completions style reasoning API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

var _ ports.TrailComposer = (*Client)(nil)

// NewClient constructs a client. The timeout is generous because this call
// is the critical path of trail generation.
func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      defaultModel,
	}
}

// NewClientWithBaseURL overrides the API endpoint; used by tests.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey, defaultTimeout)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ComposeTrail sends the structured generation request and decodes the
// response into a permissive draft. A response that is not a top-level JSON
// object fails with *domain.SchemaError.
func (c *Client) ComposeTrail(ctx context.Context, req ports.ComposeRequest) (domain.TrailDraft, error) {
	payload := chatRequest{
		Model:       c.model,
		Temperature: 0.7,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(req)},
		},
	}
	payload.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.TrailDraft{}, fmt.Errorf("openai adapter: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return domain.TrailDraft{}, fmt.Errorf("openai adapter: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.TrailDraft{}, &domain.ProviderError{Provider: "openai", Op: "chat", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.TrailDraft{}, &domain.ProviderError{Provider: "openai", Op: "chat", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.TrailDraft{}, fmt.Errorf("openai adapter: decode response: %w", err)
	}
	if parsed.Error != nil {
		return domain.TrailDraft{}, &domain.ProviderError{Provider: "openai", Op: "chat", Err: fmt.Errorf("%s", parsed.Error.Message)}
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return domain.TrailDraft{}, &domain.SchemaError{Detail: "empty completion"}
	}

	content := parsed.Choices[0].Message.Content
	var draft domain.TrailDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return domain.TrailDraft{}, &domain.SchemaError{Detail: err.Error(), Raw: content}
	}

	return draft, nil
}

// buildUserPrompt renders the generation request. Lyrical theme groups are
// embedded as JSON so the model sees the matched keywords per category.
func buildUserPrompt(req ports.ComposeRequest) string {
	var places strings.Builder
	for _, p := range req.Places {
		fmt.Fprintf(&places, "- %s (%.6f, %.6f)", p.Name, p.Location.Lat, p.Location.Lng)
		if len(p.Types) > 0 {
			fmt.Fprintf(&places, " [%s]", strings.Join(p.Types, ", "))
		}
		places.WriteString("\n")
	}
	if places.Len() == 0 {
		places.WriteString("(none found - design the route without named highlights)\n")
	}

	return fmt.Sprintf(`Create a walking trail that embodies these characteristics:

MUSICAL ATMOSPHERE:
- Primary Mood: %s
- Emotional Intensity: %d/10
- Atmospheric Quality: %s

MOVEMENT DYNAMICS:
- Intensity Level: %d/10
- Suggested Pace: %.1f km/h
- Rhythm Pattern: %d/4 time, %s rhythm

ENVIRONMENTAL PREFERENCES:
- Trail Type: %s
- Terrain Complexity: %d/10
- Scenery Preference: %s

LYRICAL THEMES:
- Nature Elements: %s
- Location References: %s
- Mood Keywords: %s
- Time of Day: %s
- Weather/Seasons: %s

LOCATION:
- Starting Point: %f, %f

NEARBY PLACES (select highlights only from this list):
%s`,
		req.Profile.MoodAnalysis.PrimaryMood,
		req.Profile.MoodAnalysis.EmotionalIntensity,
		req.Profile.MoodAnalysis.AtmosphericQuality,
		req.Profile.MovementAnalysis.IntensityLevel,
		req.Profile.MovementAnalysis.SuggestedPace,
		req.Profile.MovementAnalysis.RhythmPattern.Complexity,
		req.Profile.MovementAnalysis.RhythmPattern.Consistency,
		req.Profile.EnvironmentalPreferences.TrailType,
		req.Profile.EnvironmentalPreferences.TerrainComplexity,
		req.Profile.EnvironmentalPreferences.SceneryPreference,
		asJSON(req.Lyrics.NatureReferences),
		asJSON(req.Lyrics.Locations),
		asJSON(req.Lyrics.MoodKeywords),
		asJSON(req.Lyrics.TimeReferences),
		asJSON(req.Lyrics.WeatherReferences),
		req.Origin.Lat, req.Origin.Lng,
		places.String(),
	)
}

func asJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
