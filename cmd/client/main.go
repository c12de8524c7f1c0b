package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/tripcart/internal/client/cli"
	"github.com/dmitrijs2005/tripcart/internal/client/config"
	"github.com/dmitrijs2005/tripcart/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig(ctx)
	logger := logging.NewZerologLogger(logging.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "configuration error", "error", err)
		os.Exit(2)
	}

	app, err := cli.NewApp(ctx, cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
