package usecase

import "waypoint/internal/domain/entity"

// SegmentBuilder derives per-edge travel segments from an ordered stop
// sequence, with or without external routing data.
//
// Precondition for both entry points: every id in the sequence resolves in
// stopsByID. Callers filter the sequence before invoking; the builder does
// not re-check.
type SegmentBuilder interface {
	// FromResponse pairs each consecutive sequence edge with the
	// positionally indexed leg. Edges beyond the last leg fall back to
	// geometric computation individually. Sequences shorter than two stops
	// yield no segments.
	FromResponse(legs []RouteLeg, sequence []string, stopsByID map[string]*entity.Stop) []entity.Segment

	// Fallback builds pure-geometry segments: haversine distance, duration
	// from the assumed speed, two-point geometry, no instructions.
	Fallback(sequence []string, stopsByID map[string]*entity.Stop) []entity.Segment

	// Totals sums distance and duration across segments; (0, 0) when empty.
	Totals(segments []entity.Segment) (distanceKm, durationMinutes float64)
}
