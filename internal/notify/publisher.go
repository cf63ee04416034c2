// Package notify publishes reminder events to a Redis Stream. A separate
// delivery process (push, email) consumes the stream; the API server never
// talks to a delivery provider directly.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stream name constants
const (
	StreamReminders = "sessionly:reminders"
)

// Schema version constant
const (
	SchemaVersionV1 = "v1"
)

// Reminder kinds.
const (
	KindPreSession  = "pre_session"
	KindPostSession = "post_session"
	KindHomeworkDue = "homework_due"
)

// Reminder is one reminder event for a user.
type Reminder struct {
	UserID      string     `json:"user_id"`
	Kind        string     `json:"kind"`
	SessionDate *time.Time `json:"session_date,omitempty"`
	HomeworkID  string     `json:"homework_id,omitempty"`
	Message     string     `json:"message"`
}

// Publisher publishes reminder events to Redis Streams.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher creates a Publisher from a Redis URL.
func NewPublisher(redisURL string) (*Publisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return &Publisher{rdb: redis.NewClient(opts)}, nil
}

// PublishReminder appends a reminder to the stream and returns the message id.
func (p *Publisher) PublishReminder(ctx context.Context, r Reminder) (string, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal reminder: %w", err)
	}

	result := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamReminders,
		MaxLen: 10000,
		Approx: true,
		ID:     "*",
		Values: map[string]interface{}{
			"payload":        string(payload),
			"published_at":   time.Now().Unix(),
			"schema_version": SchemaVersionV1,
		},
	})
	if result.Err() != nil {
		return "", fmt.Errorf("failed to publish to stream: %w", result.Err())
	}
	return result.Val(), nil
}

// Close closes the Redis client connection.
func (p *Publisher) Close() error {
	return p.rdb.Close()
}
