// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakina-ai/sakina/services/llm"
	"github.com/sakina-ai/sakina/services/orchestrator/datatypes"
	"github.com/sakina-ai/sakina/services/orchestrator/pipeline"
	"github.com/sakina-ai/sakina/services/orchestrator/session"
	"github.com/sakina-ai/sakina/services/triage"
)

// =============================================================================
// Test Setup
// =============================================================================

func init() {
	// Set Gin to test mode to reduce noise in test output
	gin.SetMode(gin.TestMode)
}

// MockLLMClient serves the pipeline's enhancement, routing, and generation
// calls from a scripted queue, in call order. Generate and Chat consume
// from the same queue.
type MockLLMClient struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Calls     int
}

func (m *MockLLMClient) next() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if m.Calls >= len(m.Responses) {
		return "", nil
	}
	resp := m.Responses[m.Calls]
	m.Calls++
	return resp, nil
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string, params llm.GenerationParams) (string, error) {
	return m.next()
}

func (m *MockLLMClient) Chat(ctx context.Context, messages []datatypes.Message, params llm.GenerationParams) (string, error) {
	return m.next()
}

func (m *MockLLMClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// newChatRouter wires a real pipeline (mock generator, no RAG/WEB) behind the
// chat handler.
func newChatRouter(t *testing.T, mockLLM *MockLLMClient) (*gin.Engine, *session.Store) {
	t.Helper()

	engine, err := triage.NewEngine()
	require.NoError(t, err)

	store := session.NewStore()
	p, err := pipeline.NewPipeline(pipeline.Config{
		Engine:   engine,
		Enhancer: pipeline.NewEnhancer(mockLLM),
		Router:   pipeline.NewRouter(mockLLM, ""),
		Direct:   pipeline.NewDirectExecutor(mockLLM),
		Store:    store,
	})
	require.NoError(t, err)

	router := gin.New()
	router.POST("/v1/chat", HandleChatTurn(p))
	return router, store
}

// performRequest executes an HTTP request against the test router.
func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// =============================================================================
// HandleChatTurn Tests
// =============================================================================

func TestHandleChatTurn_Success(t *testing.T) {
	mockLLM := &MockLLMClient{Responses: []string{"enhanced", "DIRECT", "Happy to help."}}
	router, _ := newChatRouter(t, mockLLM)

	w := performRequest(router, "POST", "/v1/chat", datatypes.ChatTurnRequest{
		Message: "can we talk for a bit",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp datatypes.ChatTurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Happy to help.", resp.Response)
	assert.Equal(t, datatypes.RouteDirect, resp.RouteTaken)
	assert.False(t, resp.IsCrisis)
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.ResponseID)
}

func TestHandleChatTurn_CrisisReturns200WithSafetyMessage(t *testing.T) {
	mockLLM := &MockLLMClient{}
	router, _ := newChatRouter(t, mockLLM)

	w := performRequest(router, "POST", "/v1/chat", datatypes.ChatTurnRequest{
		Message: "there is no point living anymore",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp datatypes.ChatTurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsCrisis)
	assert.True(t, resp.RequiresImmediateAttention)
	assert.Contains(t, resp.Response, triage.EmergencyServicesNumber)
	assert.Empty(t, resp.RouteTaken)
	assert.Equal(t, 0, mockLLM.callCount())
}

func TestHandleChatTurn_InvalidJSON(t *testing.T) {
	mockLLM := &MockLLMClient{}
	router, _ := newChatRouter(t, mockLLM)

	req, _ := http.NewRequest("POST", "/v1/chat", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChatTurn_EmptyMessageRejected(t *testing.T) {
	mockLLM := &MockLLMClient{}
	router, _ := newChatRouter(t, mockLLM)

	w := performRequest(router, "POST", "/v1/chat", datatypes.ChatTurnRequest{Message: ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, mockLLM.callCount())
}

func TestHandleChatTurn_GeneratorFailureStill200(t *testing.T) {
	mockLLM := &MockLLMClient{Err: errors.New("llm backend unavailable")}
	router, _ := newChatRouter(t, mockLLM)

	w := performRequest(router, "POST", "/v1/chat", datatypes.ChatTurnRequest{
		Message: "hello, how are you",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp datatypes.ChatTurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Response)
	assert.Equal(t, false, resp.Metadata["direct_llm_success"])
}

func TestHandleChatTurn_SessionContinuity(t *testing.T) {
	mockLLM := &MockLLMClient{Responses: []string{
		"enhanced one", "DIRECT", "first reply",
		"enhanced two", "DIRECT", "second reply",
	}}
	router, store := newChatRouter(t, mockLLM)

	w1 := performRequest(router, "POST", "/v1/chat", datatypes.ChatTurnRequest{Message: "hello"})
	var first datatypes.ChatTurnResponse
	require.NoError(t, json.Unmarshal(w1.Body.Bytes(), &first))

	w2 := performRequest(router, "POST", "/v1/chat", datatypes.ChatTurnRequest{
		SessionID: first.SessionID,
		Message:   "and another thing",
	})
	var second datatypes.ChatTurnResponse
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &second))

	assert.Equal(t, first.SessionID, second.SessionID)
	conv, err := store.Get(first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 4, conv.Summary().MessageCount)
}
