// Package routes wires the HTTP handlers onto the gin engine.
package routes

import (
	"github.com/gin-gonic/gin"

	assistancehandlers "zelador/internal/interfaces/http/handlers/assistance"
	"zelador/internal/interfaces/http/middleware"
)

type AssistanceRouteConfig struct {
	AssistanceHandler *assistancehandlers.AssistanceHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

func SetupAssistanceRoutes(engine *gin.Engine, config *AssistanceRouteConfig) {
	assistances := engine.Group("/assistances")
	assistances.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		assistances.POST("",
			config.AssistanceHandler.Create)
		assistances.GET("",
			config.AssistanceHandler.List)
		assistances.GET("/stats",
			config.AssistanceHandler.Stats)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		assistances.PATCH("/:id/status",
			config.AssistanceHandler.ChangeStatus)
		assistances.POST("/:id/cancel",
			config.AssistanceHandler.Cancel)
		assistances.POST("/:id/reassign",
			config.AssistanceHandler.Reassign)
		assistances.POST("/:id/tokens",
			config.AssistanceHandler.RegenerateToken)
		assistances.GET("/:id/activity",
			config.AssistanceHandler.ActivityLog)

		// Generic parameterized routes (must come LAST)
		assistances.GET("/:id",
			config.AssistanceHandler.Get)
		assistances.PUT("/:id",
			config.AssistanceHandler.Update)
		assistances.DELETE("/:id",
			config.AssistanceHandler.Delete)
	}
}
