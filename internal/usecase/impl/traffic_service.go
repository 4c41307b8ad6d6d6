package impl

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"waypoint/config"
	"waypoint/internal/domain/entity"
	"waypoint/internal/usecase"

	"go.uber.org/fx"
)

// fallbackPreset renders pairs whose level has no configured preset.
var fallbackPreset = entity.TrafficPreset{Label: "Updating", Color: "#1976d2", SpeedKmh: 45}

// TrafficServiceParams holds dependencies for the traffic overlay, injected
// by Fx. Rand is optional so tests can pin the drift rolls.
type TrafficServiceParams struct {
	fx.In

	Config *config.Config
	Rand   *rand.Rand `optional:"true"`
}

type trafficService struct {
	mu      sync.RWMutex
	entries map[string]entity.TrafficLevel

	presets       map[entity.TrafficLevel]entity.TrafficPreset
	downgradeProb float64
	upgradeProb   float64
	rng           *rand.Rand
}

// NewTrafficService seeds the overlay from the configured road network.
func NewTrafficService(params TrafficServiceParams) usecase.TrafficUsecase {
	rng := params.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	presets := make(map[entity.TrafficLevel]entity.TrafficPreset, len(params.Config.Traffic.Presets))
	for name, preset := range params.Config.Traffic.Presets {
		presets[entity.ParseTrafficLevel(name)] = entity.TrafficPreset{
			Label:    preset.Label,
			Color:    preset.Color,
			SpeedKmh: preset.SpeedKmh,
		}
	}

	entries := make(map[string]entity.TrafficLevel, len(params.Config.Map.RoadNetwork))
	for _, link := range params.Config.Map.RoadNetwork {
		entries[entity.PairKey(link.From, link.To)] = entity.ParseTrafficLevel(link.Level)
	}

	return &trafficService{
		entries:       entries,
		presets:       presets,
		downgradeProb: params.Config.Traffic.DowngradeProbability,
		upgradeProb:   params.Config.Traffic.UpgradeProbability,
		rng:           rng,
	}
}

func (s *trafficService) LevelFor(a, b string) entity.TrafficLevel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if level, ok := s.entries[entity.PairKey(a, b)]; ok {
		return level
	}

	return entity.TrafficModerate
}

func (s *trafficService) PresetFor(level entity.TrafficLevel) entity.TrafficPreset {
	if preset, ok := s.presets[level]; ok {
		return preset
	}

	return fallbackPreset
}

func (s *trafficService) Presets() map[entity.TrafficLevel]entity.TrafficPreset {
	presets := make(map[entity.TrafficLevel]entity.TrafficPreset, len(s.presets))
	for level, preset := range s.presets {
		presets[level] = preset
	}

	return presets
}

// Snapshot returns a key-sorted copy of every entry.
func (s *trafficService) Snapshot() []usecase.TrafficEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]usecase.TrafficEntry, 0, len(s.entries))
	for key, level := range s.entries {
		entries = append(entries, usecase.TrafficEntry{Key: key, Level: level})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	return entries
}

func (s *trafficService) EnsureEntries(newStopID string, existingIDs []string, defaultLevel entity.TrafficLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existingID := range existingIDs {
		if existingID == newStopID {
			continue
		}
		key := entity.PairKey(newStopID, existingID)
		if _, ok := s.entries[key]; ok {
			continue
		}
		s.entries[key] = defaultLevel
	}
}

// Refresh applies one randomized drift pass: per entry one roll, a low roll
// eases congestion one step, a high roll worsens it one step, anything in
// between leaves the entry unchanged.
func (s *trafficService) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, level := range s.entries {
		roll := s.rng.Float64()
		switch {
		case roll < s.downgradeProb:
			s.entries[key] = level.Shift(-1)
		case roll > 1-s.upgradeProb:
			s.entries[key] = level.Shift(1)
		}
	}
}
