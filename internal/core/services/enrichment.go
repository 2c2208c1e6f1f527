package services

import (
	"context"
	"log"
	"sort"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
	"github.com/pathos-labs/pathos/backend/internal/core/ports"
	"github.com/pathos-labs/pathos/backend/internal/worker"
)

// maxCandidates bounds how many places are enriched and offered to the
// reasoning service per request.
const maxCandidates = 8

// Enricher finds points of interest near a coordinate and attaches
// encyclopedia summaries to them. Per-candidate lookups run concurrently on
// the shared worker pool; a slow or failed lookup never blocks or fails the
// other candidates.
type Enricher struct {
	places   ports.PlacesProvider
	wiki     ports.EncyclopediaProvider
	pool     *worker.Pool
	language string
}

// NewEnricher constructs an Enricher. Summaries are looked up in language
// (defaulting to English).
func NewEnricher(places ports.PlacesProvider, wiki ports.EncyclopediaProvider, pool *worker.Pool, language string) *Enricher {
	if language == "" {
		language = "en"
	}
	return &Enricher{places: places, wiki: wiki, pool: pool, language: language}
}

// FindNearby returns enriched place candidates around center, nearest first.
func (e *Enricher) FindNearby(ctx context.Context, center domain.Coordinate, radiusMeters float64) ([]domain.PlaceCandidate, error) {
	candidates, err := e.places.Nearby(ctx, center, radiusMeters)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Location.DistanceMeters(center) < candidates[j].Location.DistanceMeters(center)
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	e.pool.Each(ctx, len(candidates), func(ctx context.Context, i int) {
		e.enrich(ctx, &candidates[i])
	})

	return candidates, nil
}

// enrich attaches provider details and an encyclopedia summary to one
// candidate. Failures degrade to the bare candidate.
func (e *Enricher) enrich(ctx context.Context, candidate *domain.PlaceCandidate) {
	if candidate.ID != "" && candidate.Rating == nil {
		if detailed, err := e.places.Details(ctx, candidate.ID); err == nil {
			candidate.Rating = detailed.Rating
			if candidate.Vicinity == "" {
				candidate.Vicinity = detailed.Vicinity
			}
		} else {
			log.Printf("WARN enricher: details for %q: %v", candidate.Name, err)
		}
	}

	summary, err := e.wiki.Lookup(ctx, candidate.Name, candidate.Vicinity, e.language)
	if err != nil {
		log.Printf("WARN enricher: wiki lookup for %q: %v", candidate.Name, err)
		return
	}
	candidate.WikiSummary = summary
}
