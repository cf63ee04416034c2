package worker

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	TaskReminderScan = "reminder:scan"
	TaskSendReminder = "reminder:send"
)

// Package-level Asynq client (singleton)
var client *asynq.Client

// InitClient initializes the global Asynq client for task enqueueing.
// Must be called before any EnqueueX functions.
func InitClient(redisURL string) error {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return err
	}
	client = asynq.NewClient(opt)
	return nil
}

// CloseClient closes the Asynq client connection gracefully.
func CloseClient() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// sendReminderPayload is the payload for reminder:send tasks.
type sendReminderPayload struct {
	UserID      string     `json:"user_id"`
	Kind        string     `json:"kind"`
	SessionDate *time.Time `json:"session_date,omitempty"`
	HomeworkID  string     `json:"homework_id,omitempty"`
	Message     string     `json:"message"`
}

// EnqueueSendReminder enqueues delivery of one reminder. Retries up to 3
// times and keeps the task record for a day.
func EnqueueSendReminder(p sendReminderPayload) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}

	task := asynq.NewTask(
		TaskSendReminder,
		payload,
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
		asynq.Retention(24*time.Hour),
	)
	_, err = client.Enqueue(task)
	return err
}
