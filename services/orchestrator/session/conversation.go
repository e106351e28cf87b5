// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package session holds per-conversation state: the bounded message history,
// the most recent triage assessment, and the sticky crisis marker.
package session

import (
	"sync"
	"time"

	"github.com/sakina-ai/sakina/services/orchestrator/datatypes"
	"github.com/sakina-ai/sakina/services/triage"
)

const (
	// MaxHistoryMessages caps stored history per conversation. Older messages
	// are evicted from the front; there is no archive.
	MaxHistoryMessages = 10

	// ContextWindowMessages is how many of the most recent messages are
	// handed to the generator as conversational context.
	ContextWindowMessages = 6
)

// Conversation is the mutable state of one chat session.
//
// # Description
//
// A Conversation accumulates user and assistant turns with a hard cap of
// MaxHistoryMessages. It also remembers the latest triage assessment and
// whether any turn in the session ever triggered the crisis path; that flag
// never clears short of Reset. All methods are safe for concurrent use.
//
// # Limitations
//
//   - Eviction is silent. Callers needing full transcripts must export
//     before the cap is reached.
type Conversation struct {
	mu sync.Mutex

	id             string
	history        []datatypes.Turn
	lastAssessment triage.Assessment
	crisisSeen     bool
	createdAt      int64
	updatedAt      int64
}

// NewConversation creates an empty conversation for the given session ID.
func NewConversation(id string) *Conversation {
	now := time.Now().UnixMilli()
	return &Conversation{
		id:             id,
		history:        make([]datatypes.Turn, 0, MaxHistoryMessages),
		lastAssessment: defaultAssessment(),
		createdAt:      now,
		updatedAt:      now,
	}
}

// ID returns the session identifier.
func (c *Conversation) ID() string {
	return c.id
}

// LastActivity returns the time of the most recent turn, or the creation time
// for a conversation with no turns yet.
func (c *Conversation) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.UnixMilli(c.updatedAt)
}

// AppendTurn records one user message and the assistant reply, together with
// the assessment produced for the user message. Both messages are appended
// atomically so eviction can never split a pair across the cap boundary
// observation.
func (c *Conversation) AppendTurn(userMsg, assistantMsg string, assessment triage.Assessment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixMilli()
	c.history = append(c.history,
		datatypes.Turn{Role: datatypes.RoleUser, Content: userMsg, Timestamp: now},
		datatypes.Turn{Role: datatypes.RoleAssistant, Content: assistantMsg, Timestamp: now},
	)
	if excess := len(c.history) - MaxHistoryMessages; excess > 0 {
		c.history = append(c.history[:0], c.history[excess:]...)
	}
	c.lastAssessment = assessment
	if assessment.IsCrisis() {
		c.crisisSeen = true
	}
	c.updatedAt = now
}

// Window returns a copy of the most recent ContextWindowMessages messages in
// generator wire format, oldest first.
func (c *Conversation) Window() []datatypes.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := 0
	if len(c.history) > ContextWindowMessages {
		start = len(c.history) - ContextWindowMessages
	}
	window := make([]datatypes.Message, 0, len(c.history)-start)
	for _, t := range c.history[start:] {
		window = append(window, datatypes.Message{Role: t.Role, Content: t.Content})
	}
	return window
}

// Reset clears history and triage state but keeps the session ID and
// creation time.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = c.history[:0]
	c.lastAssessment = defaultAssessment()
	c.crisisSeen = false
	c.updatedAt = time.Now().UnixMilli()
}

// defaultAssessment is what a session reports before any turn is recorded.
func defaultAssessment() triage.Assessment {
	return triage.Assessment{
		State:    triage.StateCalm,
		Risk:     triage.RiskLow,
		Language: triage.LanguageMixed,
	}
}

// Summary returns the caller-facing projection of this conversation.
func (c *Conversation) Summary() datatypes.SessionSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	return datatypes.SessionSummary{
		SessionID:      c.id,
		MessageCount:   len(c.history),
		LastState:      c.lastAssessment.State,
		LastRisk:       c.lastAssessment.Risk,
		LastLanguage:   c.lastAssessment.Language,
		CrisisDetected: c.crisisSeen,
		CreatedAt:      c.createdAt,
		UpdatedAt:      c.updatedAt,
	}
}

// Export returns the full transcript plus summary.
func (c *Conversation) Export() datatypes.SessionExport {
	c.mu.Lock()
	history := make([]datatypes.Turn, len(c.history))
	copy(history, c.history)
	c.mu.Unlock()

	return datatypes.SessionExport{
		SessionID: c.id,
		History:   history,
		Summary:   c.Summary(),
	}
}
