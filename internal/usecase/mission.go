package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/flashrescue/internal/domain/errors"
	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/domain/repository"
	"github.com/polkiloo/flashrescue/internal/mission"
)

// MissionUseCase builds mission clusters from the current active listings.
type MissionUseCase struct {
	listings repository.ListingRepository
	engine   *mission.Engine
	events   EventPublisher
	logger   *slog.Logger
	now      func() time.Time
}

// NewMissionUseCase constructs MissionUseCase.
func NewMissionUseCase(listings repository.ListingRepository, engine *mission.Engine, events EventPublisher, logger *slog.Logger) *MissionUseCase {
	return &MissionUseCase{listings: listings, engine: engine, events: events, logger: logger, now: time.Now}
}

// Clusters returns the current mission snapshot.
func (u *MissionUseCase) Clusters(ctx context.Context) ([]model.MissionCluster, error) {
	active, err := u.listings.ListActive(ctx, u.now())
	if err != nil {
		return nil, fmt.Errorf("%w: list active listings: %v", domainErrors.ErrPersistence, err)
	}
	return u.engine.Build(active), nil
}

// Recompute rebuilds clusters and broadcasts them as a missionUpdate.
func (u *MissionUseCase) Recompute(ctx context.Context) {
	clusters, err := u.Clusters(ctx)
	if err != nil {
		u.logger.Error("mission recompute failed", slog.String("error", err.Error()))
		return
	}
	notify(ctx, u.events, u.logger, model.EventMissionUpdate, model.MissionUpdate{Clusters: clusters})
}
