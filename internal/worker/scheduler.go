package worker

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sessionly/sessionly/internal/config"
	"github.com/sessionly/sessionly/internal/logging"
)

// reminderScanSchedule runs the scan every minute; the dedupe keys make the
// cadence safe.
const reminderScanSchedule = "* * * * *"

// StartScheduler creates and starts an Asynq Scheduler for the periodic
// reminder scan. Returns a stop function for graceful shutdown.
func StartScheduler(cfg *config.Config) (stop func(), err error) {
	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	logger := logging.NewLogger("sessionly-scheduler", cfg.LogLevel, cfg.LogFormat)

	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
			Logger:   &asynqLoggerAdapter{logger: logger},
		},
	)

	task := asynq.NewTask(
		TaskReminderScan,
		nil,
		asynq.MaxRetry(1),
		asynq.Timeout(time.Minute),
		asynq.Unique(time.Minute),
	)

	entryID, err := scheduler.Register(reminderScanSchedule, task)
	if err != nil {
		return nil, fmt.Errorf("failed to register reminder scan: %w", err)
	}

	if err := scheduler.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}

	logger.Info("Scheduler started", "schedule", reminderScanSchedule, "entry_id", entryID)
	return func() { scheduler.Shutdown() }, nil
}
