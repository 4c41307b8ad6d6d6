package entity

import "strings"

// TrafficLevel is the simulated congestion severity of a road link.
type TrafficLevel string

const (
	TrafficLight    TrafficLevel = "light"
	TrafficModerate TrafficLevel = "moderate"
	TrafficHeavy    TrafficLevel = "heavy"
)

// TrafficLevels is the ordered severity scale, lightest first.
var TrafficLevels = []TrafficLevel{TrafficLight, TrafficModerate, TrafficHeavy}

// ParseTrafficLevel normalizes a free-form level string, defaulting to
// moderate for unrecognized input.
func ParseTrafficLevel(s string) TrafficLevel {
	switch TrafficLevel(strings.ToLower(strings.TrimSpace(s))) {
	case TrafficLight:
		return TrafficLight
	case TrafficHeavy:
		return TrafficHeavy
	default:
		return TrafficModerate
	}
}

// Shift moves the level by one severity step in the given direction,
// clamped at both ends of the scale. Unknown levels are returned unchanged.
func (l TrafficLevel) Shift(direction int) TrafficLevel {
	idx := -1
	for i, level := range TrafficLevels {
		if level == l {
			idx = i

			break
		}
	}
	if idx < 0 {
		return l
	}

	next := idx + direction
	if next < 0 {
		next = 0
	}
	if next > len(TrafficLevels)-1 {
		next = len(TrafficLevels) - 1
	}

	return TrafficLevels[next]
}

// TrafficPreset describes how a traffic level renders and drives fallback
// duration estimates.
type TrafficPreset struct {
	Label    string  `json:"label"`
	Color    string  `json:"color"`
	SpeedKmh float64 `json:"speed_kmh"`
}

// PairKey builds the canonical order-independent key for an unordered stop
// pair. Traffic is a property of the road, not the direction of travel, so
// (a, b) and (b, a) collide to the same entry.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}

	return a + "__" + b
}
