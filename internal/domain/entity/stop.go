package entity

// LatLng is a geographic coordinate in the application's (latitude, longitude)
// ordering. External routing responses arrive in (lon, lat) order and are
// converted at the infra boundary.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Stop is a named location that can participate in a planned route.
type Stop struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Position    LatLng `json:"position"`

	// Ephemeral marks stops created transiently from map interactions.
	// They are pruned once no longer referenced by the active route.
	Ephemeral bool `json:"ephemeral,omitempty"`
}
