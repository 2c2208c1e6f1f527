package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCoordinate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Coordinate
	}{
		{name: "pair of numbers", input: `[51.5074, -0.1278]`, want: Coordinate{Lat: 51.5074, Lng: -0.1278}},
		{name: "pair of strings", input: `["51.5074", "-0.1278"]`, want: Coordinate{Lat: 51.5074, Lng: -0.1278}},
		{name: "object of numbers", input: `{"lat": 51.5074, "lng": -0.1278}`, want: Coordinate{Lat: 51.5074, Lng: -0.1278}},
		{name: "object of strings", input: `{"lat": "51.5074", "lng": "-0.1278"}`, want: Coordinate{Lat: 51.5074, Lng: -0.1278}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var got Coordinate
			if err := json.Unmarshal([]byte(tc.input), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestCoordinate_UnmarshalJSON_BadPairLength(t *testing.T) {
	var got Coordinate
	if err := json.Unmarshal([]byte(`[1.0, 2.0, 3.0]`), &got); err == nil {
		t.Fatal("expected error for 3-element pair")
	}
}

func TestFlexFloat_UnparseableStringBecomesNaN(t *testing.T) {
	for _, input := range []string{`"abc"`, `""`} {
		var f FlexFloat
		if err := json.Unmarshal([]byte(input), &f); err != nil {
			t.Fatalf("unmarshal %s: %v", input, err)
		}
		if !math.IsNaN(float64(f)) {
			t.Errorf("expected NaN for %s, got %v", input, float64(f))
		}
	}
}

func TestCoordinate_Near(t *testing.T) {
	a := Coordinate{Lat: 51.50740, Lng: -0.12780}
	b := Coordinate{Lat: 51.50744, Lng: -0.12784}
	if !a.Near(b) {
		t.Error("expected coordinates within tolerance to be near")
	}
	c := Coordinate{Lat: 51.52, Lng: -0.12780}
	if a.Near(c) {
		t.Error("expected distant coordinates to not be near")
	}
}

func TestCoordinate_DistanceMeters(t *testing.T) {
	origin := Coordinate{Lat: 0, Lng: 0}
	if d := origin.DistanceMeters(origin); d != 0 {
		t.Errorf("distance to self: expected 0, got %v", d)
	}

	// One degree of latitude on the 6371km sphere is ~111.19km.
	oneNorth := Coordinate{Lat: 1, Lng: 0}
	d := origin.DistanceMeters(oneNorth)
	if math.Abs(d-111194.9) > 10 {
		t.Errorf("one degree latitude: expected ~111195m, got %v", d)
	}
}
