package jobs

import (
	"context"
	"time"

	"itrack_admin/services"
	"itrack_admin/services/regions"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// DraftCleanupSchedule runs the stale draft purge at the top of every hour
	DraftCleanupSchedule = "0 * * * *"
	// ExportCleanupSchedule runs the export retention sweep at half past every hour
	ExportCleanupSchedule = "30 * * * *"

	exportCleanupTimeout = 5 * time.Minute
)

// StartScheduler registers the background jobs and starts the cron runner.
// The caller stops it on shutdown.
func StartScheduler(database *gorm.DB, draftTTL, exportTTL time.Duration) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(DraftCleanupSchedule, func() {
		CleanupExpiredDrafts(database, draftTTL)
	}); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(ExportCleanupSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), exportCleanupTimeout)
		defer cancel()
		CleanupExpiredExports(ctx, database, exportTTL)
	}); err != nil {
		return nil, err
	}

	c.Start()
	logrus.WithFields(logrus.Fields{
		"drafts":  DraftCleanupSchedule,
		"exports": ExportCleanupSchedule,
	}).Info("Job scheduler started")
	return c, nil
}

// CleanupExpiredDrafts removes editing sessions nobody touched within ttl
func CleanupExpiredDrafts(database *gorm.DB, ttl time.Duration) int64 {
	removed, err := regions.PurgeStaleDrafts(database, ttl)
	if err != nil {
		logrus.WithError(err).Error("Failed to purge stale region drafts")
		return 0
	}
	if removed > 0 {
		logrus.WithField("removed", removed).Info("Purged stale region drafts")
	}
	return removed
}

// CleanupExpiredExports removes export workbooks older than ttl from storage
func CleanupExpiredExports(ctx context.Context, database *gorm.DB, ttl time.Duration) int64 {
	removed, err := services.PurgeExpiredExports(ctx, database, ttl)
	if err != nil {
		logrus.WithError(err).Error("Failed to purge expired region exports")
	}
	if removed > 0 {
		logrus.WithField("removed", removed).Info("Purged expired region exports")
	}
	return removed
}
