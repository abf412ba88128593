package broadcast

import (
	"context"
	"log/slog"

	goRedis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/flashrescue/internal/config"
	"github.com/polkiloo/flashrescue/internal/usecase"
)

// Module wires the event publisher.
var Module = fx.Options(
	fx.Provide(newPublisher),
)

type publisherParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

var newRedisClient = func(ctx context.Context, url string) (*goRedis.Client, error) {
	return NewClient(ctx, url)
}

func newPublisher(p publisherParams) (usecase.EventPublisher, error) {
	if p.Config.RedisURL == "" {
		p.Logger.Warn("redis url not configured, events will be logged only")
		return NewLogPublisher(p.Logger), nil
	}

	client, err := newRedisClient(p.Ctx, p.Config.RedisURL)
	if err != nil {
		return nil, err
	}
	registerLifecycle(p.Lifecycle, client)

	return NewRedisPublisher(client, p.Config.EventsChannel, p.Logger), nil
}

func registerLifecycle(lc fx.Lifecycle, client *goRedis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
