package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/eduspace/internal/gradebook"
	"github.com/shrimpsizemoose/eduspace/internal/metrics"
)

type Exporter struct {
	grades    *gradebook.Service
	path      string
	scheduler *gocron.Scheduler
}

func NewExporter(grades *gradebook.Service, path string) *Exporter {
	return &Exporter{
		grades:    grades,
		path:      path,
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

// Export writes the current grade-book to the configured path, replacing it atomically.
func (e *Exporter) Export(ctx context.Context) error {
	book, err := e.grades.Book(ctx)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("error").Inc()
		return err
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			metrics.ExportsTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("failed to create export dir: %w", err)
		}
	}

	tmp := e.path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if err := WriteWorkbook(book, out); err != nil {
		out.Close()
		os.Remove(tmp)
		metrics.ExportsTotal.WithLabelValues("error").Inc()
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		metrics.ExportsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, e.path); err != nil {
		metrics.ExportsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to move export into place: %w", err)
	}

	metrics.ExportsTotal.WithLabelValues("ok").Inc()
	return nil
}

// Start runs Export on the cron schedule until Stop.
func (e *Exporter) Start(schedule string) error {
	_, err := e.scheduler.Cron(schedule).Do(func() {
		if err := e.Export(context.Background()); err != nil {
			logger.Error.Printf("Export failed: %v", err)
			return
		}
		logger.Debug.Printf("Grade book exported to %s", e.path)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export: %w", err)
	}

	e.scheduler.StartAsync()
	return nil
}

func (e *Exporter) Stop() {
	e.scheduler.Stop()
}
