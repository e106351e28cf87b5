// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package session

import (
	"context"
	"log/slog"
	"time"
)

// Clock abstracts wall-clock access so janitor sweeps can be tested without
// sleeping.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by time.Now.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

const (
	// DefaultMaxIdle is how long a session may sit without a new turn before
	// the janitor evicts it.
	DefaultMaxIdle = 24 * time.Hour

	// DefaultSweepInterval is how often the janitor scans the store.
	DefaultSweepInterval = 10 * time.Minute
)

// Janitor periodically evicts idle sessions from a Store.
//
// # Description
//
// The store is memory-only, so abandoned sessions would otherwise accumulate
// until process restart. The janitor runs a sweep loop that removes any
// conversation whose last activity is older than MaxIdle. Crisis history is
// not special-cased: an evicted session is simply gone, and a returning user
// starts a fresh one.
//
// # Thread Safety
//
// Run is meant to be started once in its own goroutine; sweeps take the
// store's write lock, so they serialize with request handling.
type Janitor struct {
	store    *Store
	clock    Clock
	maxIdle  time.Duration
	interval time.Duration
}

// JanitorOption customizes a Janitor.
type JanitorOption func(*Janitor)

// WithClock injects a test clock.
func WithClock(c Clock) JanitorOption {
	return func(j *Janitor) { j.clock = c }
}

// WithMaxIdle overrides DefaultMaxIdle.
func WithMaxIdle(d time.Duration) JanitorOption {
	return func(j *Janitor) { j.maxIdle = d }
}

// WithSweepInterval overrides DefaultSweepInterval.
func WithSweepInterval(d time.Duration) JanitorOption {
	return func(j *Janitor) { j.interval = d }
}

// NewJanitor creates a janitor for the given store.
func NewJanitor(store *Store, opts ...JanitorOption) *Janitor {
	j := &Janitor{
		store:    store,
		clock:    RealClock{},
		maxIdle:  DefaultMaxIdle,
		interval: DefaultSweepInterval,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Sweep performs one eviction pass and returns the evicted session IDs.
func (j *Janitor) Sweep() []string {
	cutoff := j.clock.Now().Add(-j.maxIdle)
	evicted := j.store.EvictIdle(cutoff)
	if len(evicted) > 0 {
		slog.Info("Evicted idle sessions", "count", len(evicted), "max_idle", j.maxIdle.String())
	}
	return evicted
}

// Run sweeps on the configured interval until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep()
		}
	}
}
