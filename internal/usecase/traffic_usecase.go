package usecase

import "waypoint/internal/domain/entity"

// TrafficEntry pairs a canonical stop-pair key with its current level, for
// legend rendering.
type TrafficEntry struct {
	Key   string              `json:"key"`
	Level entity.TrafficLevel `json:"level"`
}

// TrafficUsecase owns the simulated congestion overlay. It is the only
// mutator of the traffic map; collaborators read snapshots.
type TrafficUsecase interface {
	// LevelFor returns the level for an unordered stop pair, defaulting to
	// moderate when the pair is unseeded.
	LevelFor(a, b string) entity.TrafficLevel

	// PresetFor returns the rendering preset for a level.
	PresetFor(level entity.TrafficLevel) entity.TrafficPreset

	// Presets returns all presets keyed by level.
	Presets() map[entity.TrafficLevel]entity.TrafficPreset

	// Snapshot returns a copy of all entries.
	Snapshot() []TrafficEntry

	// EnsureEntries adds defaultLevel entries pairing newStopID with every
	// existing id not yet paired with it. Existing entries are never
	// overwritten.
	EnsureEntries(newStopID string, existingIDs []string, defaultLevel entity.TrafficLevel)

	// Refresh applies one randomized drift pass: each entry independently
	// moves one severity step down or up with the configured probabilities.
	Refresh()
}
