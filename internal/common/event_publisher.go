package common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LifecycleEvent is one entry of the audit feed consumed by external notifiers.
type LifecycleEvent struct {
	Type       string                 `json:"type"`
	ActorID    string                 `json:"actor_id,omitempty"`
	EntityID   string                 `json:"entity_id"`
	Data       map[string]interface{} `json:"data,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// EventPublisher appends lifecycle events to a feed
type EventPublisher interface {
	Publish(ctx context.Context, event LifecycleEvent) error
	Length(ctx context.Context) (int64, error)
}

// RedisStreamPublisher writes events to a capped Redis Stream
type RedisStreamPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

var _ EventPublisher = (*RedisStreamPublisher)(nil)

func NewRedisStreamPublisher(client *redis.Client, stream string, maxLen int64) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

// Publish adds the event using XADD stream MAXLEN ~ n * data <json>
func (p *RedisStreamPublisher) Publish(ctx context.Context, event LifecycleEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"type": event.Type,
			"data": string(data),
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}
	return nil
}

// Length returns the number of entries currently held by the stream
func (p *RedisStreamPublisher) Length(ctx context.Context) (int64, error) {
	length, err := p.client.XLen(ctx, p.stream).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get stream length: %w", err)
	}
	return length, nil
}

// NoopPublisher drops events; used when Redis is disabled.
type NoopPublisher struct{}

var _ EventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, LifecycleEvent) error { return nil }
func (NoopPublisher) Length(context.Context) (int64, error)         { return 0, nil }
