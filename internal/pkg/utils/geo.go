package utils

import (
	"math"
	"strings"
)

// Earth radius in the units accepted by the radius endpoint.
const (
	EarthRadiusMiles = 3963.0
	EarthRadiusKm    = 6378.0
)

// EarthRadius returns the radius for unit ("mi" or "km"); ok is false for
// any other unit. An empty unit means miles.
func EarthRadius(unit string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "mi", "mile", "miles":
		return EarthRadiusMiles, true
	case "km", "kilometer", "kilometers":
		return EarthRadiusKm, true
	}
	return 0, false
}

// AngularRadius converts a surface distance into radians on a sphere of
// radius earthRadius (same unit as distance).
func AngularRadius(distance, earthRadius float64) float64 {
	return distance / earthRadius
}

// CentralAngle returns the great-circle angle in radians between two points.
func CentralAngle(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// ValidateCoordinates reports whether lat/lon are within WGS84 bounds.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
