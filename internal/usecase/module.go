package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/flashrescue/internal/config"
	"github.com/polkiloo/flashrescue/internal/mission"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newMissionEngine,
	NewImpactUseCase,
	NewMissionUseCase,
	NewListingUseCase,
	NewDecayUseCase,
	NewUserUseCase,
)

func newMissionEngine(cfg *config.Config) *mission.Engine {
	return mission.NewEngine(cfg.ClusterRadiusKm)
}
