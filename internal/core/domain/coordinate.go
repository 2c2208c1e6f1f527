package domain

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius used for all route geometry.
const EarthRadiusKm = 6371.0

// coordEpsilon is the tolerance (in degrees) for treating two coordinates
// as the same physical point when matching highlights to place candidates.
const coordEpsilon = 1e-4

// Coordinate is the canonical latitude/longitude pair. Providers emit
// coordinates in several shapes ([lat,lng] pairs, {lat,lng} objects, numbers
// as strings); everything is normalized to this type at system boundaries.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether both axes are finite.
func (c Coordinate) Valid() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lng) && !math.IsInf(c.Lng, 0)
}

// Near reports whether two coordinates coincide within the matching tolerance.
func (c Coordinate) Near(other Coordinate) bool {
	return math.Abs(c.Lat-other.Lat) <= coordEpsilon && math.Abs(c.Lng-other.Lng) <= coordEpsilon
}

// DistanceMeters returns the great-circle distance to another coordinate.
func (c Coordinate) DistanceMeters(other Coordinate) float64 {
	p1 := s2.LatLngFromDegrees(c.Lat, c.Lng)
	p2 := s2.LatLngFromDegrees(other.Lat, other.Lng)
	return p1.Distance(p2).Radians() * EarthRadiusKm * 1000
}

// UnmarshalJSON accepts either a [lat, lng] pair or a {lat, lng} object,
// with each axis given as a JSON number or a numeric string.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []FlexFloat
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("domain: coordinate pair has %d elements", len(pair))
		}
		c.Lat = float64(pair[0])
		c.Lng = float64(pair[1])
		return nil
	}

	var obj struct {
		Lat FlexFloat `json:"lat"`
		Lng FlexFloat `json:"lng"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("domain: unrecognized coordinate shape: %w", err)
	}
	c.Lat = float64(obj.Lat)
	c.Lng = float64(obj.Lng)
	return nil
}

// FlexFloat is a float64 that also unmarshals from JSON strings. Upstream
// services occasionally quote numeric fields; parsing is defensive so the
// ambiguity never travels further inward.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("domain: value %s is neither number nor string", data)
	}
	if s == "" {
		*f = FlexFloat(math.NaN())
		return nil
	}
	var parsed float64
	if _, err := fmt.Sscanf(s, "%f", &parsed); err != nil {
		*f = FlexFloat(math.NaN())
		return nil
	}
	*f = FlexFloat(parsed)
	return nil
}
