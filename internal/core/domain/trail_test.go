package domain

import (
	"encoding/json"
	"math"
	"testing"
)

var testOrigin = Coordinate{Lat: 51.5074, Lng: -0.1278}

func TestFinalizeDraft_Defaults(t *testing.T) {
	plan, err := FinalizeDraft(TrailDraft{Description: "a quiet loop"}, testOrigin)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if plan.RecommendedDistance != DefaultDistanceKm {
		t.Errorf("distance: expected %.1f, got %.2f", DefaultDistanceKm, plan.RecommendedDistance)
	}
	if plan.RecommendedPace != DefaultPaceKmh {
		t.Errorf("pace: expected %.1f, got %.1f", DefaultPaceKmh, plan.RecommendedPace)
	}
	// Duration is derived from distance and pace: (2 / 4) * 60.
	if plan.EstimatedDuration != 30 {
		t.Errorf("duration: expected 30, got %d", plan.EstimatedDuration)
	}
	if plan.TechnicalDetails.ElevationChange != DefaultElevationMeters {
		t.Errorf("elevation: expected %d, got %d", DefaultElevationMeters, plan.TechnicalDetails.ElevationChange)
	}
	if plan.TechnicalDetails.TerrainType != DefaultTerrainType {
		t.Errorf("terrain: expected %q, got %q", DefaultTerrainType, plan.TechnicalDetails.TerrainType)
	}
}

func TestFinalizeDraft_DurationDerivedFromDistanceAndPace(t *testing.T) {
	var draft TrailDraft
	draft.TechnicalDetails.RecommendedDistance = 3
	draft.TechnicalDetails.RecommendedPace = 6

	plan, err := FinalizeDraft(draft, testOrigin)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if plan.EstimatedDuration != 30 {
		t.Fatalf("expected derived duration 30, got %d", plan.EstimatedDuration)
	}
}

func TestFinalizeDraft_GeneratesWaypointsWhenMissing(t *testing.T) {
	plan, err := FinalizeDraft(TrailDraft{}, testOrigin)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(plan.Waypoints) != 7 {
		t.Fatalf("expected 7 fallback waypoints, got %d", len(plan.Waypoints))
	}
	if plan.Waypoints[0] != testOrigin || plan.Waypoints[6] != testOrigin {
		t.Errorf("fallback route must start and end at origin")
	}
}

func TestFinalizeDraft_ClosesSuppliedRoute(t *testing.T) {
	draft := TrailDraft{
		Waypoints: []Coordinate{
			{Lat: 51.51, Lng: -0.12},
			{Lat: 51.52, Lng: -0.13},
			{Lat: 51.53, Lng: -0.14},
		},
	}

	plan, err := FinalizeDraft(draft, testOrigin)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(plan.Waypoints) != 3 {
		t.Fatalf("expected the supplied 3 waypoints, got %d", len(plan.Waypoints))
	}
	if plan.Waypoints[0] != testOrigin {
		t.Errorf("route must be forced to start at origin, got %+v", plan.Waypoints[0])
	}
	if plan.Waypoints[2] != testOrigin {
		t.Errorf("route must be forced to end at origin, got %+v", plan.Waypoints[2])
	}
	// The middle of the route is the service's own.
	if plan.Waypoints[1] != draft.Waypoints[1] {
		t.Errorf("interior waypoints must be preserved")
	}
}

func TestFinalizeDraft_NumbersAsStringsAndRootFields(t *testing.T) {
	raw := `{
		"description": "riverside loop",
		"recommendedDistance": "3.456",
		"recommendedPace": "5.25",
		"technicalDetails": {
			"terrainType": "paved paths",
			"elevationChange": "15"
		}
	}`

	var draft TrailDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		t.Fatalf("failed to decode draft: %v", err)
	}

	plan, err := FinalizeDraft(draft, testOrigin)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if plan.RecommendedDistance != 3.46 {
		t.Errorf("distance: expected 3.46, got %v", plan.RecommendedDistance)
	}
	if plan.RecommendedPace != 5.3 {
		t.Errorf("pace: expected 5.3, got %v", plan.RecommendedPace)
	}
	if plan.TechnicalDetails.ElevationChange != 15 {
		t.Errorf("elevation: expected 15, got %d", plan.TechnicalDetails.ElevationChange)
	}
	if plan.TechnicalDetails.TerrainType != "paved paths" {
		t.Errorf("terrain: expected %q, got %q", "paved paths", plan.TechnicalDetails.TerrainType)
	}
}

func TestFinalizeDraft_TechnicalDetailsWinOverRoot(t *testing.T) {
	var draft TrailDraft
	draft.TechnicalDetails.RecommendedDistance = 5
	draft.RecommendedDistance = 2

	plan, err := FinalizeDraft(draft, testOrigin)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if plan.RecommendedDistance != 5 {
		t.Fatalf("expected nested field to win, got %v", plan.RecommendedDistance)
	}
}

func TestFinalizeDraft_MangledNumbersFallBack(t *testing.T) {
	var draft TrailDraft
	draft.TechnicalDetails.RecommendedDistance = FlexFloat(math.NaN())
	draft.TechnicalDetails.RecommendedPace = -3

	plan, err := FinalizeDraft(draft, testOrigin)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if plan.RecommendedDistance != DefaultDistanceKm {
		t.Errorf("NaN distance must fall back to default, got %v", plan.RecommendedDistance)
	}
	if plan.RecommendedPace != DefaultPaceKmh {
		t.Errorf("negative pace must fall back to default, got %v", plan.RecommendedPace)
	}
}

func TestFinalizeDraft_ZeroElevationIsKept(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "number zero", raw: `{"technicalDetails": {"elevationChange": 0}}`, want: 0},
		{name: "string zero", raw: `{"technicalDetails": {"elevationChange": "0"}}`, want: 0},
		{name: "absent field", raw: `{"technicalDetails": {}}`, want: DefaultElevationMeters},
		{name: "unparseable string", raw: `{"technicalDetails": {"elevationChange": "steep"}}`, want: DefaultElevationMeters},
		{name: "negative value", raw: `{"technicalDetails": {"elevationChange": -5}}`, want: DefaultElevationMeters},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var draft TrailDraft
			if err := json.Unmarshal([]byte(tc.raw), &draft); err != nil {
				t.Fatalf("failed to decode draft: %v", err)
			}

			plan, err := FinalizeDraft(draft, testOrigin)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if plan.TechnicalDetails.ElevationChange != tc.want {
				t.Errorf("elevation: expected %d, got %d", tc.want, plan.TechnicalDetails.ElevationChange)
			}
		})
	}
}

func TestFinalizeDraft_SkipsInvalidHighlights(t *testing.T) {
	draft := TrailDraft{
		Highlights: []draftHighlight{
			{Point: Coordinate{Lat: 51.51, Lng: -0.12}, Name: "Old Bridge"},
			{Point: Coordinate{Lat: math.NaN(), Lng: -0.13}, Name: "Nowhere"},
		},
	}

	plan, err := FinalizeDraft(draft, testOrigin)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(plan.Highlights) != 1 {
		t.Fatalf("expected 1 surviving highlight, got %d", len(plan.Highlights))
	}
	if plan.Highlights[0].Name != "Old Bridge" {
		t.Errorf("wrong highlight survived: %+v", plan.Highlights[0])
	}
}

func TestFinalizeDraft_MirrorsHeadlineNumbers(t *testing.T) {
	var draft TrailDraft
	draft.TechnicalDetails.RecommendedDistance = 4.2
	draft.TechnicalDetails.EstimatedDuration = 55
	draft.TechnicalDetails.RecommendedPace = 4.6

	plan, err := FinalizeDraft(draft, testOrigin)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if plan.RecommendedDistance != plan.TechnicalDetails.RecommendedDistance ||
		plan.EstimatedDuration != plan.TechnicalDetails.EstimatedDuration ||
		plan.RecommendedPace != plan.TechnicalDetails.RecommendedPace {
		t.Fatalf("root fields must mirror technicalDetails: %+v", plan)
	}
}
