// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sakina-ai/sakina/services/triage"
)

// fakeClock returns a fixed instant.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func TestJanitor_SweepEvictsIdleSessions(t *testing.T) {
	store := NewStore()
	store.GetOrCreate("idle-1")
	store.GetOrCreate("idle-2")

	clock := &fakeClock{now: time.Now().Add(48 * time.Hour)}
	j := NewJanitor(store, WithClock(clock), WithMaxIdle(24*time.Hour))

	evicted := j.Sweep()

	assert.Len(t, evicted, 2)
	assert.Equal(t, 0, store.Count())
}

func TestJanitor_SweepKeepsFreshSessions(t *testing.T) {
	store := NewStore()
	store.GetOrCreate("fresh")

	clock := &fakeClock{now: time.Now()}
	j := NewJanitor(store, WithClock(clock), WithMaxIdle(24*time.Hour))

	evicted := j.Sweep()

	assert.Empty(t, evicted)
	assert.Equal(t, 1, store.Count())
}

func TestJanitor_ActivityRefreshesIdleDeadline(t *testing.T) {
	store := NewStore()

	// Backdate one session past the idle window; keep the other current via a
	// fresh turn.
	stale := store.GetOrCreate("stale")
	stale.updatedAt = time.Now().Add(-48 * time.Hour).UnixMilli()

	active := store.GetOrCreate("active")
	active.updatedAt = stale.updatedAt
	active.AppendTurn("hello", "hi there", triage.Assessment{
		State:    triage.StateCalm,
		Risk:     triage.RiskLow,
		Language: triage.LanguageEnglish,
	})

	j := NewJanitor(store, WithClock(&fakeClock{now: time.Now()}), WithMaxIdle(24*time.Hour))
	evicted := j.Sweep()

	assert.Equal(t, []string{"stale"}, evicted)
	_, err := store.Get("active")
	assert.NoError(t, err)
}
