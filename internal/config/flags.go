package config

import (
	"flag"
	"os"
	"time"

	"github.com/arvo-app/arvo/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local database file (default from Config)
//	-i int      notification scan interval in seconds (default from Config)
//	-l string   log level (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	notifyInterval := fs.Int("i", int(cfg.NotifyInterval.Seconds()), "notification scan interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.NotifyInterval = time.Duration(*notifyInterval) * time.Second
}
