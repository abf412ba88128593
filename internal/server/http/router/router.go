package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/server/http/handlers"
	"github.com/polkiloo/flashrescue/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	listingHandler := handlers.NewListingHandler(facade)
	userHandler := handlers.NewUserHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/health", healthHandler.Check)

	api := engine.Group("/api")

	listings := api.Group("/listings")
	listings.GET("", listingHandler.List)
	listings.GET("/clusters", listingHandler.Clusters)

	listingsAuth := listings.Group("")
	listingsAuth.Use(middleware.AuthRequired(facade))
	listingsAuth.POST("", middleware.RequireRole(model.RoleDonor), listingHandler.Create)
	listingsAuth.POST("/collect", middleware.RequireRole(model.RoleOrganization), listingHandler.Collect)
	listingsAuth.POST("/:id/claim", middleware.RequireRole(model.RoleConsumer, model.RoleDonor), listingHandler.Claim)

	user := api.Group("/user")
	user.Use(middleware.AuthRequired(facade))
	user.PUT("/profile", userHandler.UpdateProfile)
	user.GET("/stats", userHandler.MyStats)

	api.GET("/users/:id/stats", userHandler.Stats)

	return engine
}
