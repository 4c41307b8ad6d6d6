package usecase

import "waypoint/internal/domain/entity"

// MergeStepGeometries concatenates per-step paths into one continuous path.
// Every step after the first drops its first vertex, which duplicates the
// previous step's last one. The drop is decided by step position, not by
// merge progress. Returns nil when all steps are empty.
func MergeStepGeometries(steps []RouteStep) []entity.LatLng {
	var merged []entity.LatLng
	for i, step := range steps {
		coords := step.Geometry
		if len(coords) == 0 {
			continue
		}
		if i > 0 {
			coords = coords[1:]
		}
		merged = append(merged, coords...)
	}

	return merged
}

// LegGeometry derives a leg's display path: step-merged geometry first, the
// leg's own overview geometry second, the caller-supplied two-point straight
// line last. Output is non-empty whenever the fallback is non-empty.
func LegGeometry(leg *RouteLeg, fallback []entity.LatLng) []entity.LatLng {
	if leg == nil {
		return fallback
	}
	if coords := MergeStepGeometries(leg.Steps); len(coords) > 0 {
		return coords
	}
	if len(leg.Geometry) > 0 {
		return leg.Geometry
	}

	return fallback
}
