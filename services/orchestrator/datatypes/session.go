// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import "github.com/sakina-ai/sakina/services/triage"

// Turn is one stored message in a conversation, as exposed by the session
// export endpoint.
type Turn struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// SessionSummary is the projection returned by GET /v1/sessions/:id/summary.
//
// CrisisDetected reports whether any turn in the session triggered the
// crisis short-circuit; it stays true for the life of the session even if
// later turns are calm.
type SessionSummary struct {
	SessionID      string                `json:"session_id"`
	MessageCount   int                   `json:"message_count"`
	LastState      triage.EmotionalState `json:"last_emotional_state"`
	LastRisk       triage.RiskLevel      `json:"last_risk_level"`
	LastLanguage   triage.Language       `json:"last_language"`
	CrisisDetected bool                  `json:"crisis_detected"`
	CreatedAt      int64                 `json:"created_at"`
	UpdatedAt      int64                 `json:"updated_at"`
}

// SessionExport is the full transcript returned by GET /v1/sessions/:id/export.
// History holds at most the retention cap of messages; older turns are
// evicted, not archived.
type SessionExport struct {
	SessionID string         `json:"session_id"`
	History   []Turn         `json:"history"`
	Summary   SessionSummary `json:"summary"`
}
