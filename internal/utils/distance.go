package utils

import (
	"fmt"
	"math"

	"moodspots/internal/model"
)

// EarthRadiusMiles is the mean Earth radius used for distances
const EarthRadiusMiles = 3959.0

// Distance returns the great-circle distance between a and b in miles
func Distance(a, b model.Location) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	// Rounding can push h a hair outside [0,1] for antipodal points
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusMiles * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// FormatMiles renders a distance the way clients display it, e.g. "0.5 mi"
func FormatMiles(miles float64) string {
	return fmt.Sprintf("%.1f mi", miles)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
