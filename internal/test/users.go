package test

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/flashrescue/internal/domain/errors"
	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/domain/repository"
)

// UserRepositoryStub keeps users in memory and records stats increments.
type UserRepositoryStub struct {
	mu         sync.Mutex
	Users      map[string]*model.User
	Increments []StatsIncrement
	Err        error

	// IncrementErr fails IncrementStats for specific user ids.
	IncrementErr map[string]error
}

// StatsIncrement is a recorded IncrementStats call.
type StatsIncrement struct {
	UserID string
	Delta  model.Stats
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{Users: make(map[string]*model.User)}
}

func (s *UserRepositoryStub) UpsertProfile(ctx context.Context, id, name string, role model.Role) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	u, ok := s.Users[id]
	if !ok {
		u = &model.User{ID: id}
		s.Users[id] = u
	}
	u.Name = name
	u.Role = role
	copied := *u
	return &copied, nil
}

func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.Users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *UserRepositoryStub) IncrementStats(ctx context.Context, id string, delta model.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.IncrementErr[id]; err != nil {
		return err
	}
	if s.Err != nil {
		return s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	u, ok := s.Users[id]
	if !ok {
		u = &model.User{ID: id}
		s.Users[id] = u
	}
	u.Stats = u.Stats.Add(delta)
	s.Increments = append(s.Increments, StatsIncrement{UserID: id, Delta: delta})
	return nil
}

// StatsOf returns accumulated stats of a user.
func (s *UserRepositoryStub) StatsOf(id string) model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.Users[id]; ok {
		return u.Stats
	}
	return model.Stats{}
}

var _ repository.UserRepository = (*UserRepositoryStub)(nil)
