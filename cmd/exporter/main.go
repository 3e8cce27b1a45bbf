package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/eduspace/internal/app"
	"github.com/shrimpsizemoose/eduspace/internal/export"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	var once = flag.Bool("once", false, "Export a single time and exit")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	path := service.Config.Export.Path
	if path == "" {
		logger.Error.Fatalf("Export path is not specified in config, use a value like exports/grades.xlsx")
	}
	exporter := export.NewExporter(service.Grades, path)

	if *once || service.Config.Export.Schedule == "" {
		if err := exporter.Export(context.Background()); err != nil {
			logger.Error.Fatalf("Export failed: %v", err)
		}
		logger.Info.Printf("Grade book exported to %s", path)
		return
	}

	if err := exporter.Start(service.Config.Export.Schedule); err != nil {
		logger.Error.Fatalf("Failed to start exporter: %v", err)
	}
	defer exporter.Stop()
	logger.Info.Printf("Exporting grade book to %s on %q", path, service.Config.Export.Schedule)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info.Println("Exporter stopped")
}
