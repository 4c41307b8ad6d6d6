package entity

// Segment is one per-edge travel unit of the planned route, derived from a
// routing-service leg or from a geometric fallback. Segments are rebuilt
// whenever the stop sequence or the routing response changes; they are never
// mutated in place.
type Segment struct {
	ID              string  `json:"id"`
	From            *Stop   `json:"from"`
	To              *Stop   `json:"to"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`

	// Geometry is never empty. When no richer geometry is derivable it
	// falls back to the two-point straight line between the stops.
	Geometry []LatLng `json:"geometry"`

	Color        string        `json:"color"`
	Label        string        `json:"label"`
	TrafficLevel TrafficLevel  `json:"traffic_level"`
	SpeedKmh     float64       `json:"speed_kmh"`
	Instructions []Instruction `json:"instructions,omitempty"`
}
