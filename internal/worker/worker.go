// Package worker runs the background reminder pipeline on Asynq. A per-minute
// scan task finds accounts whose reminder windows opened and fans out one
// delivery task per reminder; delivery publishes to the notify stream.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sessionly/sessionly/internal/config"
	"github.com/sessionly/sessionly/internal/logging"
	"github.com/sessionly/sessionly/internal/models"
	"github.com/sessionly/sessionly/internal/notify"
)

// asynqLoggerAdapter wraps slog.Logger to implement asynq.Logger interface
type asynqLoggerAdapter struct {
	logger *slog.Logger
}

func (a *asynqLoggerAdapter) Debug(args ...interface{}) {
	a.logger.Debug(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Info(args ...interface{}) {
	a.logger.Info(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Warn(args ...interface{}) {
	a.logger.Warn(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Error(args ...interface{}) {
	a.logger.Error(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Fatal(args ...interface{}) {
	a.logger.Error(fmt.Sprint(args...))
	panic(fmt.Sprint(args...))
}

// Run starts the Asynq worker server and blocks until shutdown signal.
// Use this for standalone worker mode.
func Run(cfg *config.Config, db *gorm.DB, publisher *notify.Publisher) error {
	srv, mux, err := newServer(cfg, db, publisher)
	if err != nil {
		return err
	}
	return srv.Run(mux)
}

// Start starts the Asynq worker in non-blocking mode and returns a stop function.
// Use this for embedded mode so the caller can coordinate shutdown.
func Start(cfg *config.Config, db *gorm.DB, publisher *notify.Publisher) (stop func(), err error) {
	srv, mux, err := newServer(cfg, db, publisher)
	if err != nil {
		return nil, err
	}
	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start worker: %w", err)
	}
	return func() { srv.Shutdown() }, nil
}

func newServer(cfg *config.Config, db *gorm.DB, publisher *notify.Publisher) (*asynq.Server, *asynq.ServeMux, error) {
	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	logger := logging.NewLogger("sessionly-worker", cfg.LogLevel, cfg.LogFormat)

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:     5,
			ShutdownTimeout: 30 * time.Second,
			ErrorHandler:    asynq.ErrorHandlerFunc(makeErrorHandler(logger)),
			Logger:          &asynqLoggerAdapter{logger: logger},
		},
	)

	// Dedicated Redis client for reminder dedupe keys, separate from the
	// Asynq internal connection.
	rdb, err := newDedupeRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create dedupe Redis client: %w", err)
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskReminderScan, handleReminderScan(logger, db, rdb))
	mux.HandleFunc(TaskSendReminder, handleSendReminder(logger, publisher))

	logger.Info("Worker starting", "concurrency", 5, "redis", cfg.RedisURL)
	return srv, mux, nil
}

func newDedupeRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// handleReminderScan walks all profiles and enqueues reminders whose windows
// opened. Each occurrence is deduplicated through a Redis key so overlapping
// scans never double-send.
func handleReminderScan(logger *slog.Logger, db *gorm.DB, rdb *redis.Client) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		now := time.Now()

		var profiles []models.Profile
		if err := db.WithContext(ctx).
			Where("enable_pre_reminder OR enable_post_reminder OR enable_homework_reminder").
			Find(&profiles).Error; err != nil {
			return fmt.Errorf("failed to load profiles: %w", err)
		}

		enqueued := 0
		for i := range profiles {
			p := &profiles[i]

			if p.EnablePreReminder && p.NextSessionDate != nil {
				opens := p.NextSessionDate.AddDate(0, 0, -p.PreSessionReminder)
				if now.After(opens) && now.Before(*p.NextSessionDate) {
					ok, err := markSent(ctx, rdb, p.UserID, notify.KindPreSession, *p.NextSessionDate)
					if err != nil {
						return err
					}
					if ok {
						if err := EnqueueSendReminder(sendReminderPayload{
							UserID:      p.UserID,
							Kind:        notify.KindPreSession,
							SessionDate: p.NextSessionDate,
							Message:     "Your session is coming up. Anything you want to bring?",
						}); err != nil {
							return err
						}
						enqueued++
					}
				}
			}

			if p.EnablePostReminder && p.NextSessionDate != nil {
				opens := p.NextSessionDate.AddDate(0, 0, p.PostSessionReminder)
				if now.After(opens) && now.Before(opens.AddDate(0, 0, 1)) {
					ok, err := markSent(ctx, rdb, p.UserID, notify.KindPostSession, *p.NextSessionDate)
					if err != nil {
						return err
					}
					if ok {
						if err := EnqueueSendReminder(sendReminderPayload{
							UserID:      p.UserID,
							Kind:        notify.KindPostSession,
							SessionDate: p.NextSessionDate,
							Message:     "How did your session go? Capture it while it's fresh.",
						}); err != nil {
							return err
						}
						enqueued++
					}
				}
			}

			if p.EnableHomeworkReminder {
				var due []models.HomeworkItem
				if err := db.WithContext(ctx).
					Where("user_id = ? AND completed = ? AND due_date IS NOT NULL AND due_date BETWEEN ? AND ?",
						p.UserID, false, now, now.Add(24*time.Hour)).
					Find(&due).Error; err != nil {
					return fmt.Errorf("failed to load due homework: %w", err)
				}
				for j := range due {
					ok, err := markSent(ctx, rdb, p.UserID, notify.KindHomeworkDue+":"+due[j].ID, *due[j].DueDate)
					if err != nil {
						return err
					}
					if ok {
						if err := EnqueueSendReminder(sendReminderPayload{
							UserID:     p.UserID,
							Kind:       notify.KindHomeworkDue,
							HomeworkID: due[j].ID,
							Message:    "A homework item is due soon.",
						}); err != nil {
							return err
						}
						enqueued++
					}
				}
			}
		}

		if enqueued > 0 {
			logger.Info("Reminder scan complete", "profiles", len(profiles), "enqueued", enqueued)
		}
		return nil
	}
}

// markSent claims one reminder occurrence. Returns true when this scan is the
// first to see it.
func markSent(ctx context.Context, rdb *redis.Client, userID, kind string, occurrence time.Time) (bool, error) {
	key := fmt.Sprintf("reminder:sent:%s:%s:%s", userID, kind, occurrence.Format("2006-01-02"))
	ok, err := rdb.SetNX(ctx, key, 1, 48*time.Hour).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim reminder %s: %w", key, err)
	}
	return ok, nil
}

// handleSendReminder publishes one reminder to the notify stream.
func handleSendReminder(logger *slog.Logger, publisher *notify.Publisher) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload sendReminderPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid payload: %w", asynq.SkipRetry)
		}

		if publisher == nil {
			logger.Warn("Notify publisher not configured, dropping reminder",
				"user_id", payload.UserID, "kind", payload.Kind)
			return fmt.Errorf("notify publisher not configured: %w", asynq.SkipRetry)
		}

		msgID, err := publisher.PublishReminder(ctx, notify.Reminder{
			UserID:      payload.UserID,
			Kind:        payload.Kind,
			SessionDate: payload.SessionDate,
			HomeworkID:  payload.HomeworkID,
			Message:     payload.Message,
		})
		if err != nil {
			// Retryable: the stream may be temporarily unavailable.
			return fmt.Errorf("failed to publish reminder: %w", err)
		}

		logger.Info("Reminder published",
			"user_id", payload.UserID, "kind", payload.Kind, "stream_msg_id", msgID)
		return nil
	}
}

// makeErrorHandler creates an error handler function with logger closure.
func makeErrorHandler(logger *slog.Logger) func(context.Context, *asynq.Task, error) {
	return func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)

		logger.Error(
			"Task execution failed",
			"task_type", task.Type(),
			"error", err.Error(),
			"retry_count", retried,
			"max_retry", maxRetry,
		)

		if retried >= maxRetry {
			logger.Error(
				"Task moved to dead letter queue (all retries exhausted)",
				"task_type", task.Type(),
				"payload", string(task.Payload()),
			)
		}
	}
}
