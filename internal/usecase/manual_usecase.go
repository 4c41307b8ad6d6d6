package usecase

import (
	"context"

	"waypoint/internal/domain/entity"
)

// ManualSnapshot is a read-only view of the manual routing session.
type ManualSnapshot struct {
	Mode            entity.ManualMode    `json:"mode"`
	Points          []entity.LatLng      `json:"points"`
	Destination     *entity.Stop         `json:"destination,omitempty"`
	Status          entity.RouteStatus   `json:"status"`
	Error           string               `json:"error,omitempty"`
	Coordinates     []entity.LatLng      `json:"coordinates,omitempty"`
	DistanceKm      float64              `json:"distance_km"`
	DurationMinutes float64              `json:"duration_minutes"`
	Instructions    []entity.Instruction `json:"instructions,omitempty"`
}

// ManualUsecase drives the interactive two-point routing workflow: nearest
// mode (click once, route to the nearest known stop) and custom mode (pick
// two points).
type ManualUsecase interface {
	Snapshot(ctx context.Context) *ManualSnapshot

	// SetMode switches sub-modes, hard-resetting all session state.
	SetMode(ctx context.Context, mode entity.ManualMode) error

	// Click handles one map click according to the active sub-mode.
	Click(ctx context.Context, point entity.LatLng) error

	// RemovePoint removes a selected point: the whole session resets in
	// nearest mode or when the origin is removed; removing only the
	// destination in custom mode keeps the origin.
	RemovePoint(ctx context.Context, index int) error

	// Reset cancels any in-flight request and clears the session.
	Reset(ctx context.Context) error
}
