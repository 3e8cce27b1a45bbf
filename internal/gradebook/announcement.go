package gradebook

import (
	"context"
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/eduspace/internal/metrics"
)

// Announcement returns the current PA message, "" when there is none.
func (s *Service) Announcement(ctx context.Context) (string, error) {
	raw, _, err := s.store.Get(ctx, KeyAnnouncement)
	if err != nil {
		return "", fmt.Errorf("failed to load announcement: %w", err)
	}
	return raw, nil
}

// Broadcast replaces whatever announcement is up. No authorship is kept.
func (s *Service) Broadcast(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrEmptyMessage
	}
	if err := s.store.Set(ctx, KeyAnnouncement, message); err != nil {
		return fmt.Errorf("failed to save announcement: %w", err)
	}
	metrics.MutationsTotal.WithLabelValues("gradebook", "broadcast").Inc()
	logger.Info.Printf("PA broadcast: %s", message)
	return nil
}

// ClearAnnouncement stores an empty message, which hides the banner.
func (s *Service) ClearAnnouncement(ctx context.Context) error {
	if err := s.store.Set(ctx, KeyAnnouncement, ""); err != nil {
		return fmt.Errorf("failed to clear announcement: %w", err)
	}
	metrics.MutationsTotal.WithLabelValues("gradebook", "clear_announcement").Inc()
	logger.Info.Println("PA announcement cleared")
	return nil
}
