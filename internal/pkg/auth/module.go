package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/flashrescue/internal/config"
)

// Module provides bearer token verification via fx.
var Module = fx.Provide(newTokenStrategy)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.JWTSecret, Options{})
}
