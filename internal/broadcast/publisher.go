package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/polkiloo/flashrescue/internal/domain/model"
)

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *goRedis.IntCmd
}

// RedisPublisher fans events out through a Redis pub/sub channel.
type RedisPublisher struct {
	client  redisPublisher
	channel string
	logger  *slog.Logger
}

// NewRedisPublisher builds a publisher writing JSON encoded events to channel.
func NewRedisPublisher(client redisPublisher, channel string, logger *slog.Logger) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel, logger: logger}
}

// Publish encodes the event and sends it to subscribers.
func (p *RedisPublisher) Publish(ctx context.Context, event model.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.Type, err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publish event %s: %w", event.Type, err)
	}

	p.logger.Debug("event published",
		slog.String("event", string(event.Type)),
		slog.String("channel", p.channel),
		slog.Int64("receivers", receivers),
	)
	return nil
}

// LogPublisher writes events to the log when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher returns a publisher backed by logger.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event type and payload.
func (p *LogPublisher) Publish(_ context.Context, event model.Event) error {
	p.logger.Info("event", slog.String("event", string(event.Type)), slog.Any("payload", event.Payload))
	return nil
}
