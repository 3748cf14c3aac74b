// Command web serves the extraction API: upload an XBRL filing, get back
// the normalized fact sheet.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"xbrlcli/internal/app"
	"xbrlcli/internal/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to the optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		application.Logger.Error("application terminated", "error", err)
		os.Exit(1)
	}
}
