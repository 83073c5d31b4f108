package routes

import (
	"github.com/gin-gonic/gin"

	assistancehandlers "zelador/internal/interfaces/http/handlers/assistance"
)

type TokenRouteConfig struct {
	TokenHandler *assistancehandlers.TokenHandler
	// RateLimit throttles the unauthenticated surface; nil disables it.
	RateLimit gin.HandlerFunc
}

// SetupTokenRoutes registers the public supplier surface. These routes carry
// no session auth; the capability token in the path is the whole credential.
func SetupTokenRoutes(engine *gin.Engine, config *TokenRouteConfig) {
	tokens := engine.Group("/t")
	if config.RateLimit != nil {
		tokens.Use(config.RateLimit)
	}
	{
		tokens.GET("/:token",
			config.TokenHandler.Resolve)
		tokens.POST("/:token/accept",
			config.TokenHandler.Accept)
		tokens.POST("/:token/reject",
			config.TokenHandler.Reject)
		tokens.POST("/:token/schedule",
			config.TokenHandler.Schedule)
		tokens.POST("/:token/complete",
			config.TokenHandler.Complete)
	}
}
