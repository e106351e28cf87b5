// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers contains the Gin HTTP handlers for the orchestrator.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/sakina-ai/sakina/services/orchestrator/datatypes"
	"github.com/sakina-ai/sakina/services/orchestrator/pipeline"
)

var chatTracer = otel.Tracer("sakina.orchestrator.handlers")

// HandleChatTurn processes one user turn through the triage pipeline.
//
// # Description
//
// Binds and validates a ChatTurnRequest, then hands it to the pipeline.
// Validation failure is the only 4xx path; every downstream failure
// (generator, retrieval, search) still produces a 200 with a fallback
// envelope, because the pipeline absorbs those errors by contract.
func HandleChatTurn(p *pipeline.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := chatTracer.Start(c.Request.Context(), "HandleChatTurn")
		defer span.End()

		var req datatypes.ChatTurnRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to parse the chat request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		req.EnsureDefaults()
		if err := req.Validate(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Warn("Chat request failed validation", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		resp := p.Process(ctx, &req)
		c.JSON(http.StatusOK, resp)
	}
}
