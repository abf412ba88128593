package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/polkiloo/flashrescue/internal/domain/model"
)

// EventPublisher fans events out to connected clients.
type EventPublisher interface {
	Publish(ctx context.Context, event model.Event) error
}

// notify publishes an event and logs delivery failures. Delivery is best effort.
func notify(ctx context.Context, events EventPublisher, logger *slog.Logger, typ model.EventType, payload any) {
	if events == nil {
		return
	}
	event := model.Event{Type: typ, Payload: payload, At: time.Now().UTC()}
	if err := events.Publish(ctx, event); err != nil {
		logger.Warn("event publish failed", slog.String("event", string(typ)), slog.String("error", err.Error()))
	}
}
