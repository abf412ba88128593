package test

import (
	"context"
	"sync"

	"github.com/polkiloo/flashrescue/internal/domain/model"
)

// PublisherRecorder captures published events.
type PublisherRecorder struct {
	mu     sync.Mutex
	Events []model.Event
	Err    error
}

// Publish records the event and returns the configured error.
func (p *PublisherRecorder) Publish(ctx context.Context, event model.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return p.Err
}

// OfType returns recorded events of the given type in publish order.
func (p *PublisherRecorder) OfType(typ model.EventType) []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []model.Event
	for _, e := range p.Events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops recorded events.
func (p *PublisherRecorder) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = nil
}
