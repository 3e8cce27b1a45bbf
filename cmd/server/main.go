package main

import (
	"flag"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/eduspace/internal/app"
	"github.com/shrimpsizemoose/eduspace/internal/export"
	"github.com/shrimpsizemoose/eduspace/internal/handlers"
	"github.com/shrimpsizemoose/eduspace/internal/views"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	renderer, err := views.New()
	if err != nil {
		logger.Error.Fatalf("Failed to load templates: %v", err)
	}

	if schedule := service.Config.Export.Schedule; schedule != "" {
		exporter := export.NewExporter(service.Grades, service.Config.Export.Path)
		if err := exporter.Start(schedule); err != nil {
			logger.Error.Fatalf("Failed to start exporter: %v", err)
		}
		defer exporter.Stop()
		logger.Info.Printf("Exporting grade book to %s on %q", service.Config.Export.Path, schedule)
	}

	handler := handlers.NewHandler(service, renderer)

	logger.Info.Printf("Starting eduspace server on %s", service.Config.Server.Port)
	logger.Debug.Printf("Storage: %s", service.Config.Storage.DSN)
	if err := http.ListenAndServe(service.Config.Server.Port, handler.Routes()); err != nil {
		logger.Error.Fatalf("Eduspace server failed: %v", err)
	}
}
