package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, "waypoint", cfg.Env.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "https://router.project-osrm.org", cfg.Routing.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Routing.RequestTimeout)
	assert.InDelta(t, 45.0, cfg.Routing.DefaultSpeedKmh, 0)

	require.Len(t, cfg.Traffic.Presets, 3)
	assert.InDelta(t, 0.2, cfg.Traffic.DowngradeProbability, 0)
	assert.InDelta(t, 0.2, cfg.Traffic.UpgradeProbability, 0)

	assert.NotEmpty(t, cfg.Map.Base.ID)
	assert.Len(t, cfg.Map.Stops, 4)
	assert.NotEmpty(t, cfg.Map.RoadNetwork)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.HTTP.Port = 9000
	cfg.Routing.BaseURL = "http://osrm.internal:5000"
	cfg.Routing.DefaultSpeedKmh = 30
	cfg.applyDefaults()

	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "http://osrm.internal:5000", cfg.Routing.BaseURL)
	assert.InDelta(t, 30.0, cfg.Routing.DefaultSpeedKmh, 0)
}
