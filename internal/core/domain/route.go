package domain

import (
	"math"
)

const fallbackRoutePoints = 6

// GenerateWaypoints produces a deterministic circular loop around center when
// no richer route is available. The requested distance is treated as the
// circumference of the loop; six points are placed at equal angular spacing
// on the resulting radius, longitude compensated for meridian convergence,
// and the loop is closed by appending the center as a final point.
func GenerateWaypoints(center Coordinate, distanceKm float64) ([]Coordinate, error) {
	if !center.Valid() {
		return nil, &InvalidInputError{Field: "center", Reason: "coordinate axes must be finite"}
	}
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return nil, &InvalidInputError{Field: "distance", Reason: "distance must be a finite number"}
	}

	radiusDeg := (distanceKm / (2 * math.Pi * EarthRadiusKm)) * 360

	points := make([]Coordinate, 0, fallbackRoutePoints+1)
	for i := 0; i < fallbackRoutePoints; i++ {
		angle := (2 * math.Pi * float64(i)) / fallbackRoutePoints
		lat := center.Lat + radiusDeg*math.Cos(angle)
		lng := center.Lng + radiusDeg*math.Sin(angle)/math.Cos(center.Lat*math.Pi/180)
		points = append(points, Coordinate{Lat: lat, Lng: lng})
	}

	// First point sits on the radius at angle 0; the route must start and end
	// at the caller's location.
	points[0] = center
	points = append(points, center)

	return points, nil
}
