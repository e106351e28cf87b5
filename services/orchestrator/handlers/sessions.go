// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sakina-ai/sakina/services/orchestrator/session"
)

// GetSessionSummary returns the summary projection for one session.
func GetSessionSummary(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv, err := store.Get(c.Param("sessionId"))
		if err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, conv.Summary())
	}
}

// ExportSession returns the full in-memory transcript plus summary.
func ExportSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv, err := store.Get(c.Param("sessionId"))
		if err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, conv.Export())
	}
}

// ResetSession clears a session's history and triage state in place. The
// session ID stays valid, unlike DeleteSession.
func ResetSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")
		conv, err := store.Get(sessionID)
		if err != nil {
			sessionError(c, err)
			return
		}
		conv.Reset()
		slog.Info("Reset session", "session_id", sessionID)
		c.JSON(http.StatusOK, gin.H{"status": "reset", "session_id": sessionID})
	}
}

// DeleteSession removes a session and its history entirely.
func DeleteSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")
		if err := store.Delete(sessionID); err != nil {
			sessionError(c, err)
			return
		}
		slog.Info("Deleted session", "session_id", sessionID)
		c.JSON(http.StatusOK, gin.H{"status": "deleted", "session_id": sessionID})
	}
}

func sessionError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
