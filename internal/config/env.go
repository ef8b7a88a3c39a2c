package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// parseEnv overlays Config with values from environment variables carrying
// the ARVO_ prefix (ARVO_DATABASE_PATH, ARVO_NOTIFY_INTERVAL, ...). A .env
// file in the working directory is loaded first if present; a missing file
// is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if err := envconfig.Process("arvo", cfg); err != nil {
		panic(err)
	}
}
