package domain

import (
	"sort"
	"time"
)

// FlatWaypoint is a waypoint in storage form. The document store cannot hold
// arrays of arrays, so ordered sequences are stored as index-tagged objects
// and reassembled on read.
type FlatWaypoint struct {
	Index int     `json:"index"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// FlatHighlight is a highlight in storage form.
type FlatHighlight struct {
	Index             int     `json:"index"`
	Lat               float64 `json:"lat"`
	Lng               float64 `json:"lng"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	MusicalConnection string  `json:"musicalConnection"`
}

// SharedTrailRecord is the persisted form of a TrailPlan plus its source
// track summary and origin. Immutable once written.
type SharedTrailRecord struct {
	ID                  string          `json:"id,omitempty"`
	Description         string          `json:"description"`
	RecommendedDistance float64         `json:"recommendedDistance"`
	EstimatedDuration   int             `json:"estimatedDuration"`
	RecommendedPace     float64         `json:"recommendedPace"`
	TerrainType         string          `json:"terrainType"`
	ElevationChange     int             `json:"elevationChange"`
	Song                SignalSummary   `json:"song"`
	Waypoints           []FlatWaypoint  `json:"waypoints"`
	Highlights          []FlatHighlight `json:"highlights"`
	StartLocation       Coordinate      `json:"startLocation"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// ToRecord flattens a TrailPlan into its storage form. Coordinates are
// validated after parsing; any non-finite value fails with ValidationError.
func ToRecord(plan TrailPlan, origin Coordinate, song SignalSummary) (SharedTrailRecord, error) {
	if !origin.Valid() {
		return SharedTrailRecord{}, &ValidationError{Field: "startLocation", Value: origin}
	}

	waypoints := make([]FlatWaypoint, 0, len(plan.Waypoints))
	for i, wp := range plan.Waypoints {
		if !wp.Valid() {
			return SharedTrailRecord{}, &ValidationError{Field: "waypoints", Value: wp}
		}
		waypoints = append(waypoints, FlatWaypoint{Index: i, Lat: wp.Lat, Lng: wp.Lng})
	}

	highlights := make([]FlatHighlight, 0, len(plan.Highlights))
	for i, h := range plan.Highlights {
		if !h.Point.Valid() {
			return SharedTrailRecord{}, &ValidationError{Field: "highlights", Value: h.Point}
		}
		highlights = append(highlights, FlatHighlight{
			Index:             i,
			Lat:               h.Point.Lat,
			Lng:               h.Point.Lng,
			Name:              h.Name,
			Description:       h.Description,
			MusicalConnection: h.MusicalConnection,
		})
	}

	return SharedTrailRecord{
		Description:         plan.Description,
		RecommendedDistance: plan.RecommendedDistance,
		EstimatedDuration:   plan.EstimatedDuration,
		RecommendedPace:     plan.RecommendedPace,
		TerrainType:         plan.TechnicalDetails.TerrainType,
		ElevationChange:     plan.TechnicalDetails.ElevationChange,
		Song:                song,
		Waypoints:           waypoints,
		Highlights:          highlights,
		StartLocation:       origin,
		CreatedAt:           time.Now().UTC(),
	}, nil
}

// FromRecord reconstructs a TrailPlan from its storage form. Sequences are
// rebuilt in index order. The closed-loop invariant is re-enforced on read:
// older or externally-written records may not start or end at their origin,
// so the start location is prepended/appended when missing.
func FromRecord(record SharedTrailRecord) TrailPlan {
	flatWaypoints := make([]FlatWaypoint, len(record.Waypoints))
	copy(flatWaypoints, record.Waypoints)
	sort.Slice(flatWaypoints, func(i, j int) bool { return flatWaypoints[i].Index < flatWaypoints[j].Index })

	waypoints := make([]Coordinate, 0, len(flatWaypoints)+2)
	for _, wp := range flatWaypoints {
		waypoints = append(waypoints, Coordinate{Lat: wp.Lat, Lng: wp.Lng})
	}

	start := record.StartLocation
	if len(waypoints) > 0 && start.Valid() {
		if waypoints[0] != start {
			waypoints = append([]Coordinate{start}, waypoints...)
		}
		if waypoints[len(waypoints)-1] != start {
			waypoints = append(waypoints, start)
		}
	}

	flatHighlights := make([]FlatHighlight, len(record.Highlights))
	copy(flatHighlights, record.Highlights)
	sort.Slice(flatHighlights, func(i, j int) bool { return flatHighlights[i].Index < flatHighlights[j].Index })

	highlights := make([]Highlight, 0, len(flatHighlights))
	for _, h := range flatHighlights {
		highlights = append(highlights, Highlight{
			Point:             Coordinate{Lat: h.Lat, Lng: h.Lng},
			Name:              h.Name,
			Description:       h.Description,
			MusicalConnection: h.MusicalConnection,
		})
	}

	return TrailPlan{
		ID:                  record.ID,
		Description:         record.Description,
		RecommendedDistance: record.RecommendedDistance,
		EstimatedDuration:   record.EstimatedDuration,
		RecommendedPace:     record.RecommendedPace,
		TechnicalDetails: TechnicalDetails{
			RecommendedDistance: record.RecommendedDistance,
			EstimatedDuration:   record.EstimatedDuration,
			RecommendedPace:     record.RecommendedPace,
			TerrainType:         record.TerrainType,
			ElevationChange:     record.ElevationChange,
		},
		Waypoints:  waypoints,
		Highlights: highlights,
	}
}
