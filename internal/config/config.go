// Package config loads runtime settings for the Arvo app.
//
// Sources are applied in order, later ones overriding earlier ones:
// defaults, a .env file, environment variables, an optional JSON file
// (-c/-config), and finally command-line flags.
package config

import "time"

// Config holds runtime settings for Arvo.
type Config struct {
	// DatabasePath is the path to the local SQLite database file.
	DatabasePath string `envconfig:"DATABASE_PATH"`

	// NotifyInterval is how often the notification scheduler scans schedules.
	NotifyInterval time.Duration `envconfig:"NOTIFY_INTERVAL"`

	// NotifyLead is the window before a schedule's start inside which an
	// "upcoming" alert fires.
	NotifyLead time.Duration `envconfig:"NOTIFY_LEAD"`

	// LogLevel is the minimum level emitted: debug, info, warn or error.
	LogLevel string `envconfig:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "arvo.db"
	c.NotifyInterval = 60 * time.Second
	c.NotifyLead = 15 * time.Minute
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
