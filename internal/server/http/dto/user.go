package dto

import "github.com/polkiloo/flashrescue/internal/domain/model"

// ProfileRequest updates the caller's display name.
type ProfileRequest struct {
	Name string `json:"name"`
}

// ProfileResponse describes a registered user.
type ProfileResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Role  string      `json:"role"`
	Stats model.Stats `json:"stats"`
}

// StatsResponse carries gamification counters of a user.
type StatsResponse struct {
	UserID string `json:"userId"`
	model.Stats
}
