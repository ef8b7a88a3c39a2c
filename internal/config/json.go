package config

import (
	"encoding/json"
	"os"

	"github.com/arvo-app/arvo/internal/flagx"
	"github.com/arvo-app/arvo/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "60s"
// or as integer nanoseconds. After parsing, set values are copied into the
// runtime Config.
type JSONConfig struct {
	DatabasePath   string         `json:"database_path"`
	NotifyInterval timex.Duration `json:"notify_interval"`
	NotifyLead     timex.Duration `json:"notify_lead"`
	LogLevel       string         `json:"log_level"`
}

// parseJSON overlays Config with values loaded from the JSON file named by
// the -c/-config flag. When no flag is given, nothing is loaded. Fields
// absent from the file keep their current values. Read or unmarshal errors
// panic; configuration is resolved once at startup and a broken file should
// stop the program before anything else runs.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlag()
	if path == "" {
		return
	}

	var jc JSONConfig

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.NotifyInterval.Duration != 0 {
		cfg.NotifyInterval = jc.NotifyInterval.Duration
	}
	if jc.NotifyLead.Duration != 0 {
		cfg.NotifyLead = jc.NotifyLead.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
