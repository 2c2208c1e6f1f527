// Package services holds the core trail-generation pipeline: the
// orchestrator that synthesizes trails, the place enricher, and the shared
// trail subscription.
package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
	"github.com/pathos-labs/pathos/backend/internal/core/ports"
)

const (
	// defaultSearchRadiusMeters is the place-search radius around the origin.
	defaultSearchRadiusMeters = 5000
	// defaultGalleryLimit caps the shared trail list and subscription.
	defaultGalleryLimit = 20
	// coalesceInterval is the minimum time between subscription deliveries.
	coalesceInterval = 2 * time.Second
)

// Orchestrator coordinates the trail-generation pipeline and the shared
// trail gallery.
type Orchestrator struct {
	tracks   ports.TrackSource
	lyrics   ports.LyricsSource
	enricher *Enricher
	composer ports.TrailComposer
	repo     ports.TrailRepository

	searchRadius float64
	galleryLimit int
	coalesce     time.Duration
}

// NewOrchestrator constructs the pipeline service.
func NewOrchestrator(tracks ports.TrackSource, lyrics ports.LyricsSource, enricher *Enricher, composer ports.TrailComposer, repo ports.TrailRepository) *Orchestrator {
	return &Orchestrator{
		tracks:       tracks,
		lyrics:       lyrics,
		enricher:     enricher,
		composer:     composer,
		repo:         repo,
		searchRadius: defaultSearchRadiusMeters,
		galleryLimit: defaultGalleryLimit,
		coalesce:     coalesceInterval,
	}
}

// TrackLookup bundles everything a caller learns from one track search.
type TrackLookup struct {
	Track   domain.Track          `json:"track"`
	Signal  domain.TrackSignal    `json:"signal"`
	Profile domain.FeatureProfile `json:"profile"`
	Lyrics  domain.LyricsThemes   `json:"lyrics"`
}

// LookupTrack resolves a free-text query to a track, its signal, the derived
// feature profile, and the lyrical themes. Lyrics failure is non-fatal: the
// themes come back empty with the failure marked.
func (o *Orchestrator) LookupTrack(ctx context.Context, query string) (TrackLookup, error) {
	track, signal, err := o.tracks.SearchTrack(ctx, query)
	if err != nil {
		return TrackLookup{}, err
	}

	themes := domain.EmptyLyricsThemes()
	lyricsText, err := o.lyrics.Lyrics(ctx, track.Name, track.Artist)
	if err != nil {
		log.Printf("WARN orchestrator: lyrics lookup for %q failed: %v", track.Name, err)
		themes.LookupFailed = true
	} else {
		themes = domain.ExtractThemes(lyricsText)
	}

	return TrackLookup{
		Track:   track,
		Signal:  signal,
		Profile: domain.InterpretSignal(signal),
		Lyrics:  themes,
	}, nil
}

// GenerateTrail synthesizes a TrailPlan for the origin from a track signal
// and lyrical themes. The place lookup starts immediately and runs while the
// profile is computed; the reasoning call needs the candidates, so it waits
// for them. An outright reasoning failure is fatal and surfaces as
// *domain.TrailGenerationError; field-level defects in a parsed response are
// repaired with documented defaults instead.
func (o *Orchestrator) GenerateTrail(ctx context.Context, signal *domain.TrackSignal, themes domain.LyricsThemes, origin domain.Coordinate) (domain.TrailPlan, error) {
	if !origin.Valid() {
		return domain.TrailPlan{}, domain.NewTrailGenerationError("failed to generate trail",
			&domain.InvalidInputError{Field: "origin", Reason: "coordinate axes must be finite"})
	}

	type placesResult struct {
		candidates []domain.PlaceCandidate
		err        error
	}
	placesCh := make(chan placesResult, 1)
	go func() {
		candidates, err := o.enricher.FindNearby(ctx, origin, o.searchRadius)
		placesCh <- placesResult{candidates: candidates, err: err}
	}()

	effective := domain.NeutralSignal()
	if signal != nil {
		effective = *signal
	}
	profile := domain.InterpretSignal(effective)

	places := <-placesCh
	if places.err != nil {
		// Highlights are optional; a trail without named stops is still valid.
		log.Printf("WARN orchestrator: place lookup failed, generating without highlights: %v", places.err)
		places.candidates = nil
	}

	draft, err := o.composer.ComposeTrail(ctx, ports.ComposeRequest{
		Profile: profile,
		Lyrics:  themes,
		Origin:  origin,
		Places:  places.candidates,
	})
	if err != nil {
		return domain.TrailPlan{}, domain.NewTrailGenerationError("failed to generate trail", err)
	}

	plan, err := domain.FinalizeDraft(draft, origin)
	if err != nil {
		return domain.TrailPlan{}, domain.NewTrailGenerationError("failed to generate trail", err)
	}

	plan.Highlights = substituteSummaries(plan.Highlights, places.candidates)
	return plan, nil
}

// substituteSummaries matches highlights back to place candidates by
// coordinate proximity and prefers the candidate's encyclopedia summary over
// the generated description. Highlights matching no candidate keep their
// generated text unenriched.
func substituteSummaries(highlights []domain.Highlight, candidates []domain.PlaceCandidate) []domain.Highlight {
	if len(highlights) == 0 || len(candidates) == 0 {
		return highlights
	}

	out := make([]domain.Highlight, len(highlights))
	copy(out, highlights)
	for i := range out {
		if out[i].Name == "" {
			continue
		}
		for _, candidate := range candidates {
			if !out[i].Point.Near(candidate.Location) {
				continue
			}
			if candidate.WikiSummary != nil && candidate.WikiSummary.Summary != "" {
				out[i].Description = candidate.WikiSummary.Summary
			}
			break
		}
	}
	return out
}

// ShareTrail flattens and persists a plan, returning the new record id.
func (o *Orchestrator) ShareTrail(ctx context.Context, plan domain.TrailPlan, origin domain.Coordinate, song domain.SignalSummary) (string, error) {
	record, err := domain.ToRecord(plan, origin, song)
	if err != nil {
		return "", err
	}
	return o.repo.Create(ctx, record)
}

// ListTrails returns the newest shared trails, reconstructed into plans.
func (o *Orchestrator) ListTrails(ctx context.Context) ([]domain.TrailPlan, error) {
	records, err := o.repo.List(ctx, o.galleryLimit)
	if err != nil {
		return nil, err
	}
	plans := make([]domain.TrailPlan, 0, len(records))
	for _, record := range records {
		plans = append(plans, domain.FromRecord(record))
	}
	return plans, nil
}

// IsNotFound reports whether err represents a missing track or record.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrTrackNotFound)
}
