package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/flashrescue/internal/app"
	"github.com/polkiloo/flashrescue/internal/broadcast"
	"github.com/polkiloo/flashrescue/internal/config"
	"github.com/polkiloo/flashrescue/internal/logger"
	"github.com/polkiloo/flashrescue/internal/pkg/auth"
	"github.com/polkiloo/flashrescue/internal/server/http/handlers"
	"github.com/polkiloo/flashrescue/internal/server/http/router"
	"github.com/polkiloo/flashrescue/internal/storage/postgres"
	"github.com/polkiloo/flashrescue/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		broadcast.Module,
		usecase.Module,
		fx.Provide(func(f *app.MarketFacade) handlers.MarketFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
