package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Routing configuration for the external directions service
	Routing RoutingConfig `json:"routing" yaml:"routing"`

	// Traffic configuration for the simulated congestion overlay
	Traffic TrafficConfig `json:"traffic" yaml:"traffic"`

	// Map seed data: base stop, initial stores, seeded road network
	Map MapConfig `json:"map" yaml:"map"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// RoutingConfig defines the external routing service connection
type RoutingConfig struct {
	// Base URL of the OSRM-compatible routing service
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// Per-request timeout for directions calls
	RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout"`

	// Default vehicle speed in km/h for duration estimation when routing
	// data is unavailable
	DefaultSpeedKmh float64 `json:"defaultSpeedKmh" yaml:"defaultSpeedKmh"`

	// Locale tag passed to the maneuver-text compiler
	Locale string `json:"locale" yaml:"locale"`
}

// TrafficConfig defines the simulated traffic overlay behavior
type TrafficConfig struct {
	// Presets keyed by level name (light, moderate, heavy)
	Presets map[string]TrafficPreset `json:"presets" yaml:"presets"`

	// Probability that a drift pass downgrades an entry one severity step
	DowngradeProbability float64 `json:"downgradeProbability" yaml:"downgradeProbability"`

	// Probability that a drift pass upgrades an entry one severity step
	UpgradeProbability float64 `json:"upgradeProbability" yaml:"upgradeProbability"`
}

// TrafficPreset describes rendering and speed assumptions for one level
type TrafficPreset struct {
	Label    string  `json:"label" yaml:"label"`
	Color    string  `json:"color" yaml:"color"`
	SpeedKmh float64 `json:"speedKmh" yaml:"speedKmh"`
}

// MapConfig carries the seeded map data
type MapConfig struct {
	Base        StopSeed   `json:"base" yaml:"base"`
	DefaultZoom int        `json:"defaultZoom" yaml:"defaultZoom"`
	Stops       []StopSeed `json:"stops" yaml:"stops"`
	RoadNetwork []RoadLink `json:"roadNetwork" yaml:"roadNetwork"`
}

// StopSeed is a statically configured stop
type StopSeed struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Latitude    float64 `json:"latitude" yaml:"latitude"`
	Longitude   float64 `json:"longitude" yaml:"longitude"`
}

// RoadLink seeds one traffic overlay entry between two stops
type RoadLink struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Level string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf, with environment variables
// overriding file values (WAYPOINT-style keys: HTTP_PORT -> http.port).
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if found {
		if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read %s config failed", currEnv)
		}
	}

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// HTTP_PORT -> http.port
			return strings.ReplaceAll(strings.ToLower(k), "_", "."), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Env.ServiceName == "" {
		c.Env.ServiceName = "waypoint"
	}
	if c.Env.Log.Level == "" {
		c.Env.Log.Level = "info"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}

	if c.Routing.BaseURL == "" {
		c.Routing.BaseURL = "https://router.project-osrm.org"
	}
	if c.Routing.RequestTimeout <= 0 {
		c.Routing.RequestTimeout = 15 * time.Second
	}
	if c.Routing.DefaultSpeedKmh <= 0 {
		c.Routing.DefaultSpeedKmh = 45
	}
	if c.Routing.Locale == "" {
		c.Routing.Locale = "en"
	}

	if len(c.Traffic.Presets) == 0 {
		c.Traffic.Presets = map[string]TrafficPreset{
			"light":    {Label: "Light traffic", Color: "#2e7d32", SpeedKmh: 50},
			"moderate": {Label: "Moderate traffic", Color: "#f9a825", SpeedKmh: 40},
			"heavy":    {Label: "Heavy traffic", Color: "#c62828", SpeedKmh: 25},
		}
	}
	if c.Traffic.DowngradeProbability <= 0 {
		c.Traffic.DowngradeProbability = 0.2
	}
	if c.Traffic.UpgradeProbability <= 0 {
		c.Traffic.UpgradeProbability = 0.2
	}

	if c.Map.Base.ID == "" {
		c.Map.Base = StopSeed{
			ID:          "base-city-center",
			Name:        "City center",
			Description: "Reference point when the map opens",
			Latitude:    10.039128,
			Longitude:   105.769949,
		}
	}
	if c.Map.DefaultZoom == 0 {
		c.Map.DefaultZoom = 16
	}
	if len(c.Map.Stops) == 0 {
		c.Map.Stops = []StopSeed{
			{ID: "store-a", Name: "Store A", Latitude: 10.042891, Longitude: 105.773601},
			{ID: "store-b", Name: "Store B", Latitude: 10.04363, Longitude: 105.765455},
			{ID: "store-c", Name: "Store C", Latitude: 10.040324, Longitude: 105.7683},
			{ID: "store-d", Name: "Store D", Latitude: 10.043725, Longitude: 105.778793},
		}
	}
	if len(c.Map.RoadNetwork) == 0 {
		c.Map.RoadNetwork = []RoadLink{
			{From: "base-city-center", To: "store-a", Level: "moderate"},
			{From: "base-city-center", To: "store-b", Level: "light"},
			{From: "base-city-center", To: "store-c", Level: "light"},
			{From: "base-city-center", To: "store-d", Level: "heavy"},
			{From: "store-a", To: "store-c", Level: "moderate"},
			{From: "store-a", To: "store-d", Level: "moderate"},
			{From: "store-b", To: "store-c", Level: "light"},
		}
	}
}
