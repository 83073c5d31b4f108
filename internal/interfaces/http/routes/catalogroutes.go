package routes

import (
	"github.com/gin-gonic/gin"

	cataloghandlers "zelador/internal/interfaces/http/handlers/catalog"
	"zelador/internal/interfaces/http/middleware"
)

type CatalogRouteConfig struct {
	BuildingHandler         *cataloghandlers.BuildingHandler
	SupplierHandler         *cataloghandlers.SupplierHandler
	InterventionTypeHandler *cataloghandlers.InterventionTypeHandler
	AuthMiddleware          *middleware.AuthMiddleware
}

func SetupCatalogRoutes(engine *gin.Engine, config *CatalogRouteConfig) {
	buildings := engine.Group("/buildings")
	buildings.Use(config.AuthMiddleware.RequireAuth())
	{
		buildings.POST("", config.BuildingHandler.Create)
		buildings.GET("", config.BuildingHandler.List)
		buildings.GET("/:id", config.BuildingHandler.Get)
		buildings.PUT("/:id", config.BuildingHandler.Update)
		buildings.DELETE("/:id", config.BuildingHandler.Delete)
	}

	suppliers := engine.Group("/suppliers")
	suppliers.Use(config.AuthMiddleware.RequireAuth())
	{
		suppliers.POST("", config.SupplierHandler.Create)
		suppliers.GET("", config.SupplierHandler.List)
		suppliers.GET("/:id", config.SupplierHandler.Get)
		suppliers.PUT("/:id", config.SupplierHandler.Update)
		suppliers.DELETE("/:id", config.SupplierHandler.Delete)
	}

	interventionTypes := engine.Group("/intervention-types")
	interventionTypes.Use(config.AuthMiddleware.RequireAuth())
	{
		interventionTypes.POST("", config.InterventionTypeHandler.Create)
		interventionTypes.GET("", config.InterventionTypeHandler.List)
		interventionTypes.GET("/:id", config.InterventionTypeHandler.Get)
		interventionTypes.PUT("/:id", config.InterventionTypeHandler.Update)
		interventionTypes.DELETE("/:id", config.InterventionTypeHandler.Delete)
	}
}
