package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
)

const searchBody = `{
	"tracks": {
		"items": [{
			"id": "track-1",
			"name": "Hymn",
			"artists": [{"name": "The Walkers"}, {"name": "A Guest"}],
			"album": {"name": "Roads", "images": [{"url": "https://img/large"}, {"url": "https://img/small"}]},
			"popularity": 64,
			"duration_ms": 215000,
			"preview_url": ""
		}]
	}
}`

const featuresBody = `{
	"tempo": 128.0,
	"energy": 0.82,
	"valence": 0.66,
	"mode": 1,
	"danceability": 0.71,
	"acousticness": 0.05,
	"instrumentalness": 0.0,
	"time_signature": 4
}`

func TestSearchTrack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/v1/search":
			if got := r.URL.Query().Get("q"); got != "the walkers hymn" {
				t.Errorf("query: got %q", got)
			}
			w.Write([]byte(searchBody))
		case r.URL.Path == "/v1/audio-features/track-1":
			w.Write([]byte(featuresBody))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.Client(), server.URL)

	track, signal, err := client.SearchTrack(context.Background(), "the walkers hymn")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if track.ID != "track-1" || track.Name != "Hymn" {
		t.Errorf("wrong track: %+v", track)
	}
	if track.Artist != "The Walkers, A Guest" {
		t.Errorf("artists must be joined, got %q", track.Artist)
	}
	if track.AlbumArt != "https://img/large" {
		t.Errorf("expected the first album image, got %q", track.AlbumArt)
	}

	if signal.Tempo != 128.0 || signal.Energy != 0.82 || signal.Mode != domain.ModeMajor {
		t.Errorf("signal not mapped: %+v", signal)
	}
	if signal.Estimated {
		t.Error("real audio features must not be marked estimated")
	}
	if signal.Popularity != 64 || signal.DurationMs != 215000 {
		t.Errorf("track metadata must flow into the signal: %+v", signal)
	}
}

func TestSearchTrack_NoHits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tracks":{"items":[]}}`))
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.Client(), server.URL)

	_, _, err := client.SearchTrack(context.Background(), "gibberish")
	if !errors.Is(err, domain.ErrTrackNotFound) {
		t.Fatalf("expected ErrTrackNotFound, got %v", err)
	}
}

func TestSearchTrack_SearchFailureIsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.Client(), server.URL)

	_, _, err := client.SearchTrack(context.Background(), "anything")
	var providerErr *domain.ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected *ProviderError, got %v", err)
	}
}

func TestSearchTrack_FeaturesUnavailableYieldsPseudoSignal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v1/search" {
			w.Write([]byte(searchBody))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.Client(), server.URL)

	_, signal, err := client.SearchTrack(context.Background(), "the walkers hymn")
	if err != nil {
		t.Fatalf("feature failure must not fail the search, got: %v", err)
	}
	if !signal.Estimated {
		t.Fatal("fallback signal must be marked estimated")
	}
	if signal.Energy != 0.64 {
		t.Errorf("energy must derive from popularity, got %v", signal.Energy)
	}
	if signal.Tempo < 60 || signal.Tempo > 180 {
		t.Errorf("pseudo tempo out of range: %v", signal.Tempo)
	}
}

func TestSearchTrack_ZeroFeaturesTreatedAsMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v1/search" {
			w.Write([]byte(searchBody))
			return
		}
		w.Write([]byte(`{"tempo":0,"energy":0,"valence":0,"mode":0,"danceability":0,"acousticness":0,"instrumentalness":0,"time_signature":0}`))
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.Client(), server.URL)

	_, signal, err := client.SearchTrack(context.Background(), "the walkers hymn")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !signal.Estimated {
		t.Fatal("all-zero features must trigger the pseudo-signal")
	}
}

func TestSearchTrack_PreviewEnergyOverridesPopularity(t *testing.T) {
	orig := analyzePreviewFunc
	analyzePreviewFunc = func(httpClient *http.Client, url string) (float64, error) {
		return 0.9, nil
	}
	defer func() { analyzePreviewFunc = orig }()

	withPreview := `{
		"tracks": {"items": [{
			"id": "track-2", "name": "Hymn", "artists": [{"name": "The Walkers"}],
			"album": {"name": "Roads", "images": []},
			"popularity": 10, "duration_ms": 180000,
			"preview_url": "https://cdn/preview.mp3"
		}]}
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v1/search" {
			w.Write([]byte(withPreview))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.Client(), server.URL)

	_, signal, err := client.SearchTrack(context.Background(), "the walkers hymn")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if signal.Energy != 0.9 {
		t.Fatalf("preview analysis must override popularity, got energy %v", signal.Energy)
	}
}
