// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides data structures for the orchestrator service.
//
// This file contains the request type for the chat endpoint and the response
// envelope returned for every turn. The envelope shape is identical across
// pipeline paths, including the crisis short-circuit.
package datatypes

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sakina-ai/sakina/services/triage"
)

// MaxMessageContentBytes is the maximum size of a single user message.
// Oversized payloads are rejected at validation, before any pipeline work.
const MaxMessageContentBytes = 32 * 1024 // 32KB

// chatValidate is the validator instance for chat datatypes.
// Initialized in init() with custom validators.
var chatValidate *validator.Validate

func init() {
	chatValidate = validator.New()
	_ = chatValidate.RegisterValidation("maxbytes", validateMaxBytes)
}

// validateMaxBytes checks byte length (not rune count) so large multi-byte
// Arabic payloads cannot bypass the limit.
func validateMaxBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxMessageContentBytes
}

// Message is a single chat message in generator wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message roles, matching the OpenAI and Ollama chat conventions.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurnRequest represents one user turn submitted to POST /v1/chat.
//
// # Description
//
// ChatTurnRequest carries the raw user message plus optional correlation
// identifiers. Session continuity is handled server-side: pass the SessionID
// from a previous response to continue a conversation, or omit it to start a
// new one.
//
// # Fields
//
//   - RequestID: Optional. Unique identifier for this request (UUID v4).
//     Generated server-side when absent. Used for tracing and correlation.
//   - SessionID: Optional. Session to append this turn to. A new session is
//     created when absent.
//   - Message: Required. The raw user text, max 32KB.
//   - Timestamp: Optional. Unix timestamp in milliseconds (UTC).
//     Populated server-side when absent.
//
// # Validation
//
// Uses go-playground/validator. Call Validate() after binding the JSON body.
//
// # Examples
//
//	req := ChatTurnRequest{
//	    SessionID: "550e8400-e29b-41d4-a716-446655440000",
//	    Message:   "أشعر بالقلق من الامتحان",
//	}
type ChatTurnRequest struct {
	RequestID string `json:"request_id" validate:"omitempty,uuid4"`
	SessionID string `json:"session_id" validate:"omitempty,uuid4"`
	Message   string `json:"message" validate:"required,maxbytes"`
	Timestamp int64  `json:"timestamp" validate:"gte=0"`
}

// Validate validates the ChatTurnRequest fields.
func (r *ChatTurnRequest) Validate() error {
	return chatValidate.Struct(r)
}

// EnsureDefaults populates RequestID and Timestamp if the client omitted them.
func (r *ChatTurnRequest) EnsureDefaults() {
	if r.RequestID == "" {
		r.RequestID = uuid.New().String()
	}
	if r.Timestamp == 0 {
		r.Timestamp = time.Now().UnixMilli()
	}
}

// EnsureSessionID returns the request's session ID, generating and storing a
// fresh one when the client did not provide any.
func (r *ChatTurnRequest) EnsureSessionID() string {
	if r.SessionID == "" {
		r.SessionID = uuid.New().String()
	}
	return r.SessionID
}

// ChatTurnResponse is the envelope returned to callers for every turn.
//
// # Description
//
// The envelope always carries the response text plus machine-readable triage
// state (language, emotional state, risk level, crisis flag) and the per-step
// metadata map, so callers receive a well-formed response even under total
// backend failure. RouteTaken is empty, and omitted from the JSON, when the
// crisis short-circuit fired: no routing happened on that turn.
//
// # Fields
//
//   - ResponseID: Unique identifier for this response (UUID v4).
//   - RequestID: Echo of the request ID for correlation.
//   - SessionID: The session this turn belongs to.
//   - Response: The text to show the user.
//   - EmotionalState: Detected emotional state (calm, anxious, ...).
//   - RiskLevel: Assessed risk level (low, moderate, high, critical).
//   - DetectedLanguage: arabic, english, or mixed.
//   - IsCrisis: True when the crisis short-circuit produced this response.
//   - RouteTaken: RAG, WEB, or DIRECT. Empty on crisis turns.
//   - EnhancedQuery: The reformulated query, when enhancement succeeded.
//   - RequiresImmediateAttention: Set only on crisis envelopes so alerting
//     callers do not need to compare risk levels.
//   - Metadata: Per-step success flags and error strings (enhance_success,
//     routing_success, rag_success, ...). Steps append to this map and never
//     overwrite earlier entries.
type ChatTurnResponse struct {
	ResponseID                 string                `json:"response_id"`
	RequestID                  string                `json:"request_id"`
	SessionID                  string                `json:"session_id"`
	Response                   string                `json:"response"`
	EmotionalState             triage.EmotionalState `json:"emotional_state"`
	RiskLevel                  triage.RiskLevel      `json:"risk_level"`
	DetectedLanguage           triage.Language       `json:"detected_language"`
	IsCrisis                   bool                  `json:"is_crisis"`
	RouteTaken                 Route                 `json:"route_taken,omitempty"`
	EnhancedQuery              string                `json:"enhanced_query,omitempty"`
	RequiresImmediateAttention bool                  `json:"requires_immediate_attention,omitempty"`
	Timestamp                  int64                 `json:"timestamp"`
	ProcessingTimeMs           int64                 `json:"processing_time_ms"`
	Metadata                   map[string]any        `json:"metadata"`
}

// NewChatTurnResponse creates an envelope with a generated ResponseID, the
// current timestamp, and an empty metadata map, ready for the pipeline to
// fill in.
func NewChatTurnResponse(requestID, sessionID string) *ChatTurnResponse {
	return &ChatTurnResponse{
		ResponseID: uuid.New().String(),
		RequestID:  requestID,
		SessionID:  sessionID,
		Timestamp:  time.Now().UnixMilli(),
		Metadata:   make(map[string]any),
	}
}
