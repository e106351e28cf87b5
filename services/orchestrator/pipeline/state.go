// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package pipeline implements the per-turn flow: triage, crisis interception,
// query enhancement, routing, and path execution. Every step that wraps an
// external call reports success or failure through the turn metadata instead
// of propagating errors; the pipeline always completes and returns an
// envelope.
package pipeline

import (
	"github.com/sakina-ai/sakina/services/orchestrator/datatypes"
	"github.com/sakina-ai/sakina/services/triage"
)

// TurnState is the working state threaded through one pipeline invocation.
// It accumulates the enhanced query, the routing decision, the final response
// text, and append-only metadata. It is owned by a single goroutine for the
// duration of the turn and needs no locking.
type TurnState struct {
	RawQuery      string
	EnhancedQuery string
	Assessment    triage.Assessment
	Route         datatypes.Route
	Response      string

	metadata map[string]any
}

// NewTurnState starts a turn for the given raw user text.
func NewTurnState(raw string) *TurnState {
	return &TurnState{
		RawQuery: raw,
		metadata: make(map[string]any),
	}
}

// SetMeta records a metadata entry. First write wins: steps report their own
// outcome exactly once, and a later step can never mask an earlier failure.
func (s *TurnState) SetMeta(key string, value any) {
	if _, exists := s.metadata[key]; exists {
		return
	}
	s.metadata[key] = value
}

// StepResult records the standard success/error pair for a named step, e.g.
// StepResult("rag", err) writes rag_success and, when err != nil, rag_error.
func (s *TurnState) StepResult(step string, err error) {
	if err != nil {
		s.SetMeta(step+"_success", false)
		s.SetMeta(step+"_error", err.Error())
		return
	}
	s.SetMeta(step+"_success", true)
}

// Metadata returns the accumulated metadata map. The map is handed to the
// response envelope at the end of the turn; callers must not mutate it after
// that.
func (s *TurnState) Metadata() map[string]any {
	return s.metadata
}
