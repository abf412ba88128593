package repository

import (
	"context"

	"github.com/polkiloo/flashrescue/internal/domain/model"
)

// UserRepository persists participants and their impact stats.
type UserRepository interface {
	UpsertProfile(ctx context.Context, id, name string, role model.Role) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	// IncrementStats atomically adds delta to the user's counters, creating the row if needed.
	IncrementStats(ctx context.Context, id string, delta model.Stats) error
}
