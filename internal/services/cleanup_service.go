package services

import (
	"context"
	"time"

	"movie-collection/internal/metrics"
	"movie-collection/internal/storage"

	"github.com/sirupsen/logrus"
)

// CleanupService periodically removes uploaded posters older than the retention window.
type CleanupService struct {
	store     storage.ImageStore
	interval  time.Duration
	retention time.Duration
	logger    *logrus.Logger
	now       func() time.Time
}

func NewCleanupService(store storage.ImageStore, interval, retention time.Duration, logger *logrus.Logger) *CleanupService {
	return &CleanupService{
		store:     store,
		interval:  interval,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Start runs a sweep immediately and then every interval until ctx is cancelled.
func (s *CleanupService) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Image cleanup disabled")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"interval":  s.interval.String(),
		"retention": s.retention.String(),
	}).Info("Starting image cleanup")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping image cleanup")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep and returns how many images were removed.
func (s *CleanupService) RunOnce(ctx context.Context) int {
	cutoff := s.now().Add(-s.retention)

	removed, err := s.store.Sweep(ctx, cutoff)
	metrics.RecordCleanup(removed, err)
	if err != nil {
		s.logger.WithError(err).Error("Image cleanup failed")
		return removed
	}

	if removed > 0 {
		s.logger.WithField("removed", removed).Info("Removed expired images")
	}
	return removed
}
