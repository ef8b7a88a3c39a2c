package main

import (
	"context"
	"log"
	"os"

	"github.com/arvo-app/arvo/internal/buildinfo"
	"github.com/arvo-app/arvo/internal/cli"
	"github.com/arvo-app/arvo/internal/config"
	"github.com/arvo-app/arvo/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault(cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
