package usecase

import (
	"context"

	"waypoint/internal/domain/entity"
	"waypoint/internal/errors"
)

// ErrNoRoute reports a well-formed routing response carrying zero candidate
// routes. Fetcher implementations return it (possibly wrapped) so callers can
// phrase the failure distinctly from transport errors.
var ErrNoRoute = errors.New("no candidate routes returned")

// Maneuver describes a single turn/action within a routing step, already
// normalized from the service's free-form strings.
type Maneuver struct {
	Type     entity.ManeuverType     `json:"type"`
	Modifier entity.ManeuverModifier `json:"modifier,omitempty"`
	Exit     int                     `json:"exit,omitempty"`
}

// RouteStep is one maneuver-level instruction unit within a leg.
type RouteStep struct {
	DistanceMeters float64        `json:"distance_meters"`
	Name           string         `json:"name"`
	Maneuver       Maneuver       `json:"maneuver"`
	Geometry       []entity.LatLng `json:"geometry,omitempty"`

	// Instruction is a literal text embedded by the service, used verbatim
	// when present.
	Instruction string `json:"instruction,omitempty"`
}

// RouteLeg is the service's per-edge sub-result between two consecutive
// waypoints. Legs are strictly positional: leg i belongs to edge i of the
// requested stop sequence.
type RouteLeg struct {
	DistanceMeters  float64        `json:"distance_meters"`
	DurationSeconds float64        `json:"duration_seconds"`
	Steps           []RouteStep    `json:"steps,omitempty"`
	Geometry        []entity.LatLng `json:"geometry,omitempty"`
}

// RouteResult is one candidate route with coordinates already converted to
// local (lat, lng) order and totals converted to km/minutes.
type RouteResult struct {
	Coordinates     []entity.LatLng `json:"coordinates"`
	Legs            []RouteLeg      `json:"legs"`
	DistanceKm      float64         `json:"distance_km"`
	DurationMinutes float64         `json:"duration_minutes"`
}

// RouteFetcher requests driving directions from the external routing service.
type RouteFetcher interface {
	// FetchRoute requests a route through the given waypoints in order.
	// annotate requests per-leg distance/duration annotations (used for the
	// main route, skipped for manual two-point requests).
	// A transport failure, non-2xx status, or empty candidate list is an error.
	FetchRoute(ctx context.Context, waypoints []entity.LatLng, annotate bool) (*RouteResult, error)
}
