// Package ports defines the interfaces between the core pipeline and its
// external collaborators. Implementations live under internal/adapters.
package ports

import (
	"context"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
)

// TrackSource resolves a free-text query to a track identity and its signal.
// A query that matches nothing fails with domain.ErrTrackNotFound; transport
// and auth failures surface as *domain.ProviderError so callers can tell the
// two apart.
type TrackSource interface {
	SearchTrack(ctx context.Context, query string) (domain.Track, domain.TrackSignal, error)
}

// LyricsSource returns the raw lyric text for a track, or an empty string
// when the provider has none. Lookup failure is non-fatal for the pipeline.
type LyricsSource interface {
	Lyrics(ctx context.Context, title, artist string) (string, error)
}

// PlacesProvider lists named points of interest near a coordinate.
type PlacesProvider interface {
	Nearby(ctx context.Context, center domain.Coordinate, radiusMeters float64) ([]domain.PlaceCandidate, error)
	Details(ctx context.Context, placeID string) (domain.PlaceCandidate, error)
}

// EncyclopediaProvider looks up a reference summary for a named place.
// Returns nil (no error) when no relevant page exists; a summary is never
// fabricated.
type EncyclopediaProvider interface {
	Lookup(ctx context.Context, name, vicinity, language string) (*domain.WikiSummary, error)
}

// ComposeRequest is the structured input handed to the reasoning service.
// Highlights must be selected only from Places; the service must not invent
// locations.
type ComposeRequest struct {
	Profile domain.FeatureProfile
	Lyrics  domain.LyricsThemes
	Origin  domain.Coordinate
	Places  []domain.PlaceCandidate
}

// TrailComposer invokes the generative reasoning service, constrained to
// emit one JSON object, and returns the permissively-decoded draft. A
// response that does not parse as a top-level object fails with
// *domain.SchemaError.
type TrailComposer interface {
	ComposeTrail(ctx context.Context, req ComposeRequest) (domain.TrailDraft, error)
}
