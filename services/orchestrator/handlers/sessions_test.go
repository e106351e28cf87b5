// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakina-ai/sakina/services/orchestrator/datatypes"
	"github.com/sakina-ai/sakina/services/orchestrator/session"
	"github.com/sakina-ai/sakina/services/triage"
)

func newSessionRouter(store *session.Store) *gin.Engine {
	router := gin.New()
	router.GET("/v1/sessions/:sessionId/summary", GetSessionSummary(store))
	router.GET("/v1/sessions/:sessionId/export", ExportSession(store))
	router.POST("/v1/sessions/:sessionId/reset", ResetSession(store))
	router.DELETE("/v1/sessions/:sessionId", DeleteSession(store))
	return router
}

func seedSession(store *session.Store, id string) {
	conv := store.GetOrCreate(id)
	conv.AppendTurn("I feel worried about work", "That sounds difficult.", triage.Assessment{
		State:    triage.StateAnxious,
		Risk:     triage.RiskModerate,
		Language: triage.LanguageEnglish,
	})
}

// =============================================================================
// Session Handler Tests
// =============================================================================

func TestGetSessionSummary_Success(t *testing.T) {
	store := session.NewStore()
	seedSession(store, "session-abc")
	router := newSessionRouter(store)

	w := performRequest(router, "GET", "/v1/sessions/session-abc/summary", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var summary datatypes.SessionSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "session-abc", summary.SessionID)
	assert.Equal(t, 2, summary.MessageCount)
	assert.Equal(t, triage.StateAnxious, summary.LastState)
	assert.False(t, summary.CrisisDetected)
}

func TestGetSessionSummary_NotFound(t *testing.T) {
	store := session.NewStore()
	router := newSessionRouter(store)

	w := performRequest(router, "GET", "/v1/sessions/missing/summary", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportSession_IncludesHistory(t *testing.T) {
	store := session.NewStore()
	seedSession(store, "session-export")
	router := newSessionRouter(store)

	w := performRequest(router, "GET", "/v1/sessions/session-export/export", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var export datatypes.SessionExport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &export))
	assert.Equal(t, "session-export", export.SessionID)
	require.Len(t, export.History, 2)
	assert.Equal(t, datatypes.RoleUser, export.History[0].Role)
	assert.Equal(t, "I feel worried about work", export.History[0].Content)
}

func TestResetSession_ClearsHistoryKeepsSession(t *testing.T) {
	store := session.NewStore()
	seedSession(store, "session-reset")
	router := newSessionRouter(store)

	w := performRequest(router, "POST", "/v1/sessions/session-reset/reset", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	conv, err := store.Get("session-reset")
	require.NoError(t, err)
	assert.Equal(t, 0, conv.Summary().MessageCount)

	w = performRequest(router, "POST", "/v1/sessions/missing/reset", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSession_RemovesSession(t *testing.T) {
	store := session.NewStore()
	seedSession(store, "session-gone")
	router := newSessionRouter(store)

	w := performRequest(router, "DELETE", "/v1/sessions/session-gone", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, store.Count())

	// A second delete reports not found
	w = performRequest(router, "DELETE", "/v1/sessions/session-gone", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
