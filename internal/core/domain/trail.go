package domain

import (
	"math"
)

// Defaults applied when the reasoning service omits or mangles a numeric
// field. Field-level defects are repaired here, never surfaced as errors.
const (
	DefaultDistanceKm      = 2.0
	DefaultPaceKmh         = 4.0
	DefaultElevationMeters = 10
	DefaultTerrainType     = "mixed terrain"
)

// TechnicalDetails carries the bounded numeric parameters of a trail.
type TechnicalDetails struct {
	RecommendedDistance float64 `json:"recommendedDistance"`
	EstimatedDuration   int     `json:"estimatedDuration"`
	RecommendedPace     float64 `json:"recommendedPace"`
	TerrainType         string  `json:"terrainType"`
	ElevationChange     int     `json:"elevationChange"`
}

// Highlight is an annotated stop along the trail.
type Highlight struct {
	Point             Coordinate `json:"point"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	MusicalConnection string     `json:"musicalConnection"`
}

// TrailPlan is the canonical generated route. The three headline numbers are
// mirrored at the root in addition to TechnicalDetails for caller convenience.
// Invariant: Waypoints starts and ends at the request origin (closed loop).
type TrailPlan struct {
	ID                  string           `json:"id,omitempty"`
	Description         string           `json:"description"`
	RecommendedDistance float64          `json:"recommendedDistance"`
	EstimatedDuration   int              `json:"estimatedDuration"`
	RecommendedPace     float64          `json:"recommendedPace"`
	TechnicalDetails    TechnicalDetails `json:"technicalDetails"`
	Waypoints           []Coordinate     `json:"waypoints"`
	Highlights          []Highlight      `json:"highlights"`
}

// TrailDraft is the permissive intermediate shape decoded straight from the
// reasoning service. Observed responses vary: numbers arrive as strings,
// fields appear at the root instead of under technicalDetails, waypoints come
// as pairs or objects. FinalizeDraft normalizes a draft into a strict
// TrailPlan; the permissive shape must not leak past that call.
type TrailDraft struct {
	Description      string `json:"description"`
	TechnicalDetails struct {
		RecommendedDistance FlexFloat `json:"recommendedDistance"`
		EstimatedDuration   FlexFloat `json:"estimatedDuration"`
		RecommendedPace     FlexFloat  `json:"recommendedPace"`
		TerrainType         string     `json:"terrainType"`
		ElevationChange     *FlexFloat `json:"elevationChange"`
	} `json:"technicalDetails"`
	RecommendedDistance FlexFloat        `json:"recommendedDistance"`
	EstimatedDuration   FlexFloat        `json:"estimatedDuration"`
	RecommendedPace     FlexFloat        `json:"recommendedPace"`
	Waypoints           []Coordinate     `json:"waypoints"`
	Highlights          []draftHighlight `json:"highlights"`
}

type draftHighlight struct {
	Point             Coordinate `json:"point"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	MusicalConnection string     `json:"musicalConnection"`
}

// FinalizeDraft converts a permissive draft into the strict TrailPlan,
// applying documented defaults, regenerating missing waypoints via the
// geometry fallback, and forcing the closed-loop invariant on whatever
// route the service returned.
func FinalizeDraft(draft TrailDraft, origin Coordinate) (TrailPlan, error) {
	distance := pickNumber(draft.TechnicalDetails.RecommendedDistance, draft.RecommendedDistance, DefaultDistanceKm)
	pace := pickNumber(draft.TechnicalDetails.RecommendedPace, draft.RecommendedPace, DefaultPaceKmh)

	duration, durationSupplied := supplied(draft.TechnicalDetails.EstimatedDuration)
	if !durationSupplied {
		duration, durationSupplied = supplied(draft.EstimatedDuration)
	}
	if !durationSupplied {
		// Derived rather than received: duration follows from distance and pace.
		duration = (distance / pace) * 60
	}

	// Zero is a legal elevation change; only absence or a mangled value
	// falls back to the default.
	elevation := float64(DefaultElevationMeters)
	if e := draft.TechnicalDetails.ElevationChange; e != nil {
		if v := float64(*e); !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 {
			elevation = v
		}
	}
	terrain := draft.TechnicalDetails.TerrainType
	if terrain == "" {
		terrain = DefaultTerrainType
	}

	waypoints := draft.Waypoints
	if len(waypoints) < 2 {
		generated, err := GenerateWaypoints(origin, distance)
		if err != nil {
			return TrailPlan{}, err
		}
		waypoints = generated
	} else {
		waypoints = closeLoop(waypoints, origin)
	}

	highlights := make([]Highlight, 0, len(draft.Highlights))
	for _, h := range draft.Highlights {
		if !h.Point.Valid() {
			continue
		}
		highlights = append(highlights, Highlight(h))
	}

	distance = math.Round(distance*100) / 100
	pace = math.Round(pace*10) / 10
	durationMin := int(math.Round(duration))

	details := TechnicalDetails{
		RecommendedDistance: distance,
		EstimatedDuration:   durationMin,
		RecommendedPace:     pace,
		TerrainType:         terrain,
		ElevationChange:     int(math.Round(elevation)),
	}

	return TrailPlan{
		Description:         draft.Description,
		RecommendedDistance: distance,
		EstimatedDuration:   durationMin,
		RecommendedPace:     pace,
		TechnicalDetails:    details,
		Waypoints:           waypoints,
		Highlights:          highlights,
	}, nil
}

// closeLoop forces the route to start and end at origin, regardless of the
// endpoints the service returned.
func closeLoop(waypoints []Coordinate, origin Coordinate) []Coordinate {
	out := make([]Coordinate, len(waypoints))
	copy(out, waypoints)
	out[0] = origin
	out[len(out)-1] = origin
	return out
}

// supplied reports whether a flex field held a usable positive number.
func supplied(f FlexFloat) (float64, bool) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

func pickNumber(primary, fallback FlexFloat, def float64) float64 {
	if v, ok := supplied(primary); ok {
		return v
	}
	if v, ok := supplied(fallback); ok {
		return v
	}
	return def
}
