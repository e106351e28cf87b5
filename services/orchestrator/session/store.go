// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package session

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a session ID has no stored conversation.
var ErrNotFound = errors.New("session not found")

// Store is an in-memory conversation registry keyed by session ID.
//
// Sessions live until deleted or process restart. Durable session storage is
// deliberately out of scope for the triage layer.
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{conversations: make(map[string]*Conversation)}
}

// GetOrCreate returns the conversation for id, creating it on first use.
func (s *Store) GetOrCreate(id string) *Conversation {
	s.mu.RLock()
	conv, ok := s.conversations[id]
	s.mu.RUnlock()
	if ok {
		return conv
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the write lock; another goroutine may have won the race.
	if conv, ok := s.conversations[id]; ok {
		return conv
	}
	conv = NewConversation(id)
	s.conversations[id] = conv
	return conv
}

// Get returns the conversation for id or ErrNotFound.
func (s *Store) Get(id string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return conv, nil
}

// Delete removes the conversation for id. Deleting an unknown ID returns
// ErrNotFound so handlers can distinguish 404 from success.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[id]; !ok {
		return ErrNotFound
	}
	delete(s.conversations, id)
	return nil
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

// EvictIdle removes every session whose last activity is before cutoff and
// returns the evicted session IDs.
func (s *Store) EvictIdle(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var evicted []string
	for id, conv := range s.conversations {
		if conv.LastActivity().Before(cutoff) {
			delete(s.conversations, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}
