package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sas_go/config"
	"sas_go/database"
	"sas_go/models"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// LogMaintenanceService flushes Redis-cached activity logs into the database
// and prunes rows past the retention window.
type LogMaintenanceService struct {
	redisClient *redis.Client
	cron        *cron.Cron
}

// NewLogMaintenanceService creates a new service instance
func NewLogMaintenanceService() *LogMaintenanceService {
	return &LogMaintenanceService{
		redisClient: database.GetRedisClient(),
		cron:        cron.New(),
	}
}

// FlushCachedLogsToDatabase moves logs from Redis cache to database
func (lms *LogMaintenanceService) FlushCachedLogsToDatabase() error {
	if lms.redisClient == nil {
		return fmt.Errorf("redis client not available")
	}

	ctx := context.Background()
	cutoffTime := time.Now().Add(-24 * time.Hour)

	// Get all expired logs from the sorted set
	expiredLogs, err := lms.redisClient.ZRangeByScore(ctx, "logs:queue", &redis.ZRangeBy{
		Min: "0",
		Max: fmt.Sprintf("%d", cutoffTime.Unix()),
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to get expired logs: %v", err)
	}

	logrus.Infof("Processing %d expired cached logs", len(expiredLogs))

	var processedCount int
	var errorCount int

	for _, logKey := range expiredLogs {
		logData, err := lms.redisClient.Get(ctx, logKey).Result()
		if err != nil {
			if err != redis.Nil {
				logrus.WithError(err).Errorf("Failed to get log data for key: %s", logKey)
				errorCount++
			}
			continue
		}

		var activityLog models.ActivityLog
		if err := json.Unmarshal([]byte(logData), &activityLog); err != nil {
			logrus.WithError(err).Errorf("Failed to unmarshal log data for key: %s", logKey)
			errorCount++
			continue
		}

		if err := database.DB.Create(&activityLog).Error; err != nil {
			logrus.WithError(err).Errorf("Failed to save log to database: %v", activityLog)
			errorCount++
			continue
		}

		// Remove from cache and queue
		pipeline := lms.redisClient.Pipeline()
		pipeline.Del(ctx, logKey)
		pipeline.ZRem(ctx, "logs:queue", logKey)
		if _, err := pipeline.Exec(ctx); err != nil {
			logrus.WithError(err).Errorf("Failed to remove log from cache: %s", logKey)
		}

		processedCount++
	}

	logrus.Infof("Flushed %d logs to database, %d errors", processedCount, errorCount)
	return nil
}

// PruneOldLogs deletes activity logs older than the retention window.
func (lms *LogMaintenanceService) PruneOldLogs(retentionDays int) error {
	if retentionDays < 7 {
		return fmt.Errorf("minimum retention is 7 days for safety")
	}

	cutoffDate := time.Now().AddDate(0, 0, -retentionDays)
	result := database.DB.Unscoped().Where("created_at < ?", cutoffDate).Delete(&models.ActivityLog{})
	if result.Error != nil {
		return fmt.Errorf("failed to prune old logs: %v", result.Error)
	}

	if result.RowsAffected > 0 {
		logrus.Infof("Pruned %d activity logs older than %s", result.RowsAffected, cutoffDate.Format("2006-01-02"))
	}
	return nil
}

// StartLogMaintenanceScheduler schedules the hourly flush and nightly prune.
func (lms *LogMaintenanceService) StartLogMaintenanceScheduler() {
	retention := config.AppConfig.LogRetentionDays

	if _, err := lms.cron.AddFunc("@hourly", func() {
		if err := lms.FlushCachedLogsToDatabase(); err != nil {
			logrus.WithError(err).Warn("periodic FlushCachedLogsToDatabase failed")
		}
	}); err != nil {
		logrus.WithError(err).Error("Failed to schedule log flush job")
	}

	if _, err := lms.cron.AddFunc("0 3 * * *", func() {
		if err := lms.PruneOldLogs(retention); err != nil {
			logrus.WithError(err).Warn("periodic PruneOldLogs failed")
		}
	}); err != nil {
		logrus.WithError(err).Error("Failed to schedule log prune job")
	}

	lms.cron.Start()

	// Run the flush immediately once so a restart picks up stragglers
	go func() {
		if err := lms.FlushCachedLogsToDatabase(); err != nil {
			logrus.WithError(err).Warn("initial FlushCachedLogsToDatabase failed")
		}
	}()
}

// Stop halts scheduled maintenance.
func (lms *LogMaintenanceService) Stop() {
	if lms.cron != nil {
		lms.cron.Stop()
	}
}
