// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakina-ai/sakina/services/orchestrator/handlers"
	"github.com/sakina-ai/sakina/services/orchestrator/middleware"
	"github.com/sakina-ai/sakina/services/orchestrator/pipeline"
	"github.com/sakina-ai/sakina/services/orchestrator/session"
)

// SetupRoutes wires all HTTP endpoints. Health and metrics stay outside the
// auth boundary so probes and scrapers work without credentials.
func SetupRoutes(router *gin.Engine, p *pipeline.Pipeline, store *session.Store, apiToken string) {
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(apiToken))
	{
		v1.POST("/chat", handlers.HandleChatTurn(p))

		sessions := v1.Group("/sessions")
		{
			sessions.GET("/:sessionId/summary", handlers.GetSessionSummary(store))
			sessions.GET("/:sessionId/export", handlers.ExportSession(store))
			sessions.POST("/:sessionId/reset", handlers.ResetSession(store))
			sessions.DELETE("/:sessionId", handlers.DeleteSession(store))
		}
	}
}
