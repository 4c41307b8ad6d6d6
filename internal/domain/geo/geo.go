// Package geo provides pure distance and formatting primitives. Every
// function is total: no error paths, no panics.
package geo

import (
	"fmt"
	"math"

	"waypoint/internal/domain/entity"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two coordinates using
// the haversine formula. Symmetric, zero for identical points.
func DistanceKm(a, b entity.LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// FormatDistance renders a distance in kilometers as rounded meters below
// 1 km, else as one-decimal kilometers.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}

	return fmt.Sprintf("%.1f km", km)
}

// FormatDuration renders a duration in minutes as "< 1 min" below a minute,
// rounded minutes below an hour, else an hours-and-minutes composite that
// omits the minutes part when it rounds to zero.
func FormatDuration(minutes float64) string {
	if minutes < 1 {
		return "< 1 min"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", int(math.Round(minutes)))
	}

	hours := int(minutes) / 60
	mins := int(math.Round(math.Mod(minutes, 60)))
	if mins == 60 {
		hours++
		mins = 0
	}
	if mins == 0 {
		return fmt.Sprintf("%d h", hours)
	}

	return fmt.Sprintf("%d h %d min", hours, mins)
}
