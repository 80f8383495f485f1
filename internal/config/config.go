package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration. Values come from an optional YAML file,
// then the environment, then Normalize defaults.
type Config struct {
	Port     string `yaml:"port"`
	Timezone string `yaml:"timezone"`

	// RoutingProvider is "google", "ors" or "none".
	RoutingProvider   string `yaml:"routing_provider"`
	GoogleMapsAPIKey  string `yaml:"google_maps_api_key"`
	ORSAPIKey         string `yaml:"ors_api_key"`
	OpenWeatherAPIKey string `yaml:"openweather_api_key"`

	// CacheBackend is "sqlite", "postgres", "redis" or "none".
	CacheBackend string        `yaml:"cache_backend"`
	DBPath       string        `yaml:"db_path"`
	DatabaseURL  string        `yaml:"database_url"`
	RedisAddr    string        `yaml:"redis_addr"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	// PruneSchedule is a standard five-field cron expression.
	PruneSchedule string `yaml:"prune_schedule"`

	SeedPath          string `yaml:"seed_path"`
	TravelConcurrency int    `yaml:"travel_concurrency"`
	DefaultTravelMode string `yaml:"default_travel_mode"`
}

func Default() *Config {
	c := &Config{}
	c.Normalize()
	return c
}

// Get returns the environment value for key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the YAML file at path (a missing file is not an error), applies
// environment overrides and fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("load config %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("load config %q: parse: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := []struct {
		key string
		dst *string
	}{
		{"PORT", &c.Port},
		{"TIMEZONE", &c.Timezone},
		{"ROUTING_PROVIDER", &c.RoutingProvider},
		{"GOOGLE_MAPS_API_KEY", &c.GoogleMapsAPIKey},
		{"ORS_API_KEY", &c.ORSAPIKey},
		{"OPENWEATHER_API_KEY", &c.OpenWeatherAPIKey},
		{"CACHE_BACKEND", &c.CacheBackend},
		{"DB_PATH", &c.DBPath},
		{"DATABASE_URL", &c.DatabaseURL},
		{"REDIS_ADDR", &c.RedisAddr},
		{"PRUNE_SCHEDULE", &c.PruneSchedule},
		{"SEED_PATH", &c.SeedPath},
		{"DEFAULT_TRAVEL_MODE", &c.DefaultTravelMode},
	}
	for _, s := range strs {
		*s.dst = Get(s.key, *s.dst)
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL %q: %w", v, err)
		}
		c.CacheTTL = ttl
	}

	if v := os.Getenv("TRAVEL_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TRAVEL_CONCURRENCY %q: %w", v, err)
		}
		c.TravelConcurrency = n
	}

	return nil
}

// Normalize fills missing or unknown values with defaults.
func (c *Config) Normalize() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}

	c.RoutingProvider = strings.ToLower(strings.TrimSpace(c.RoutingProvider))
	switch c.RoutingProvider {
	case "google", "ors", "none":
	case "":
		// Pick whichever provider has a key.
		switch {
		case c.GoogleMapsAPIKey != "":
			c.RoutingProvider = "google"
		case c.ORSAPIKey != "":
			c.RoutingProvider = "ors"
		default:
			c.RoutingProvider = "none"
		}
	default:
		c.RoutingProvider = "none"
	}

	c.CacheBackend = strings.ToLower(strings.TrimSpace(c.CacheBackend))
	switch c.CacheBackend {
	case "sqlite", "postgres", "redis", "none":
	default:
		c.CacheBackend = "sqlite"
	}

	if c.DBPath == "" {
		c.DBPath = "data/app.db"
	}
	if c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 720 * time.Hour
	}
	if c.PruneSchedule == "" {
		c.PruneSchedule = "0 3 * * *"
	}
	if c.SeedPath == "" {
		c.SeedPath = "data/seeds/trips.json"
	}
	if c.TravelConcurrency <= 0 {
		c.TravelConcurrency = 5
	}

	switch c.DefaultTravelMode {
	case "driving", "transit":
	default:
		c.DefaultTravelMode = "driving"
	}
}

// Location resolves Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
