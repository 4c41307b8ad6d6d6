package usecase

import (
	"context"

	"waypoint/internal/domain/entity"
)

// PlanSnapshot is a read-only view of the current plan handed to the
// presentation layer.
type PlanSnapshot struct {
	RouteStops      []entity.Stop        `json:"route_stops"`
	AvailableStops  []entity.Stop        `json:"available_stops"`
	Segments        []entity.Segment     `json:"segments"`
	Coordinates     []entity.LatLng      `json:"coordinates,omitempty"`
	DistanceKm      float64              `json:"distance_km"`
	DurationMinutes float64              `json:"duration_minutes"`
	DistanceLabel   string               `json:"distance_label"`
	DurationLabel   string               `json:"duration_label"`
	Status          entity.RouteStatus   `json:"status"`
	Error           string               `json:"error,omitempty"`
	Instructions    []entity.Instruction `json:"instructions,omitempty"`
}

// CreateStopInput is a new-stop creation payload, already validated at the
// delivery boundary.
type CreateStopInput struct {
	Name        string
	Description string
	Latitude    float64
	Longitude   float64
	TrafficHint string
	Ephemeral   bool
}

// PlannerUsecase owns the route stop sequence, the stop registry, and the
// main-route state machine. All sequence mutations go through it.
type PlannerUsecase interface {
	// Snapshot returns the current plan with segments derived from the
	// latest routing response, or from the geometric fallback while loading
	// or after a failure.
	Snapshot(ctx context.Context) *PlanSnapshot

	// AddStop appends a known stop to the sequence. Appending an id already
	// present is a no-op.
	AddStop(ctx context.Context, stopID string) error

	// CreateStop registers a new stop and appends it to the sequence.
	CreateStop(ctx context.Context, input *CreateStopInput) (*entity.Stop, error)

	// RemoveStop removes a stop from the sequence, pruning it from the
	// registry when ephemeral.
	RemoveStop(ctx context.Context, stopID string) error

	// MoveStop moves the sequence entry at fromIndex to toIndex.
	// Out-of-range indices are a no-op.
	MoveStop(ctx context.Context, fromIndex, toIndex int) error

	// ClearRoute empties the sequence and resets the route state.
	ClearRoute(ctx context.Context) error

	// KnownStops returns every registered stop except the base, in
	// registration order. Used by the manual session's nearest search.
	KnownStops() []entity.Stop
}
