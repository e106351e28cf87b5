// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatTurnRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     ChatTurnRequest
		wantErr bool
	}{
		{
			name: "valid minimal request",
			req:  ChatTurnRequest{Message: "hello"},
		},
		{
			name: "valid with session and request IDs",
			req: ChatTurnRequest{
				RequestID: uuid.New().String(),
				SessionID: uuid.New().String(),
				Message:   "أشعر بالقلق",
			},
		},
		{
			name:    "empty message rejected",
			req:     ChatTurnRequest{Message: ""},
			wantErr: true,
		},
		{
			name:    "malformed session ID rejected",
			req:     ChatTurnRequest{SessionID: "not-a-uuid", Message: "hello"},
			wantErr: true,
		},
		{
			name:    "malformed request ID rejected",
			req:     ChatTurnRequest{RequestID: "12345", Message: "hello"},
			wantErr: true,
		},
		{
			name:    "negative timestamp rejected",
			req:     ChatTurnRequest{Message: "hello", Timestamp: -1},
			wantErr: true,
		},
		{
			name:    "oversized message rejected",
			req:     ChatTurnRequest{Message: strings.Repeat("a", MaxMessageContentBytes+1)},
			wantErr: true,
		},
		{
			name: "message at the byte limit accepted",
			req:  ChatTurnRequest{Message: strings.Repeat("a", MaxMessageContentBytes)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChatTurnRequest_MaxBytesCountsBytesNotRunes(t *testing.T) {
	// Each Arabic character is multiple UTF-8 bytes; the limit must apply to
	// the encoded size.
	msg := strings.Repeat("ق", MaxMessageContentBytes/2+1)
	req := ChatTurnRequest{Message: msg}

	assert.Error(t, req.Validate())
}

func TestChatTurnRequest_EnsureDefaults(t *testing.T) {
	req := ChatTurnRequest{Message: "hello"}
	req.EnsureDefaults()

	require.NotEmpty(t, req.RequestID)
	_, err := uuid.Parse(req.RequestID)
	assert.NoError(t, err)
	assert.Positive(t, req.Timestamp)
}

func TestChatTurnRequest_EnsureDefaults_PreservesClientValues(t *testing.T) {
	id := uuid.New().String()
	req := ChatTurnRequest{RequestID: id, Message: "hello", Timestamp: 1234}
	req.EnsureDefaults()

	assert.Equal(t, id, req.RequestID)
	assert.Equal(t, int64(1234), req.Timestamp)
}

func TestChatTurnRequest_EnsureSessionID(t *testing.T) {
	req := ChatTurnRequest{Message: "hello"}

	first := req.EnsureSessionID()
	require.NotEmpty(t, first)

	// Idempotent once assigned
	assert.Equal(t, first, req.EnsureSessionID())
}

func TestNewChatTurnResponse(t *testing.T) {
	resp := NewChatTurnResponse("req-1", "sess-1")

	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.NotEmpty(t, resp.ResponseID)
	assert.NotNil(t, resp.Metadata)
	assert.Positive(t, resp.Timestamp)
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		input string
		want  Route
		exact bool
	}{
		{"RAG", RouteRAG, true},
		{"WEB", RouteWeb, true},
		{"DIRECT", RouteDirect, true},
		{"direct", RouteDirect, true},
		{"  Rag \n", RouteRAG, true},
		{"SEARCH", RouteDirect, false},
		{"", RouteDirect, false},
		{"RAG please", RouteDirect, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, exact := ParseRoute(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.exact, exact)
		})
	}
}
