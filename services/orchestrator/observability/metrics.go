// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides metrics and instrumentation for the orchestrator.
//
// # Description
//
// This package implements Prometheus metrics for monitoring the triage
// pipeline. Metrics include:
//   - Turn counters (by route and status)
//   - Crisis interception counters (by language)
//   - Emotional state distribution
//   - Turn latency histograms
//   - Active session gauge
//
// # Integration
//
// Metrics are exposed via the /metrics endpoint. Use with Prometheus +
// Grafana for dashboards and alerting.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const metricsNamespace = "sakina"

// Subsystem for triage pipeline metrics
const triageSubsystem = "triage"

// TriageMetrics holds all Prometheus metrics for the chat pipeline.
//
// # Fields
//
//   - TurnsTotal: Counter of processed turns by route and status
//   - CrisisInterceptionsTotal: Counter of crisis short-circuits by language
//   - EmotionalStatesTotal: Counter of detected emotional states
//   - StepFailuresTotal: Counter of per-step failures (enhance, routing, ...)
//   - TurnDurationSeconds: Histogram of end-to-end turn latency
//   - ActiveSessions: Gauge of live sessions in the store
//
// # Thread Safety
//
// All operations are thread-safe.
type TriageMetrics struct {
	// TurnsTotal counts processed turns.
	// Labels: route (RAG, WEB, DIRECT, CRISIS), status (success, fallback)
	TurnsTotal *prometheus.CounterVec

	// CrisisInterceptionsTotal counts crisis short-circuits.
	// Labels: language (arabic, english, mixed)
	CrisisInterceptionsTotal *prometheus.CounterVec

	// EmotionalStatesTotal counts detected emotional states per turn.
	// Labels: state (calm, anxious, depressed, angry, distressed, crisis)
	EmotionalStatesTotal *prometheus.CounterVec

	// StepFailuresTotal counts pipeline step failures that triggered a
	// fallback. Labels: step (enhance, routing, rag, web_search, direct_llm)
	StepFailuresTotal *prometheus.CounterVec

	// TurnDurationSeconds measures end-to-end turn latency.
	// Labels: route
	TurnDurationSeconds *prometheus.HistogramVec

	// ActiveSessions tracks live sessions in the in-memory store.
	ActiveSessions prometheus.Gauge
}

// DefaultMetrics is the singleton instance of TriageMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *TriageMetrics

// InitMetrics initializes the default metrics instance.
//
// # Description
//
// Creates and registers all Prometheus metrics. Should be called once at
// application startup.
//
// # Limitations
//
//   - Panics if called twice (duplicate registration).
func InitMetrics() *TriageMetrics {
	DefaultMetrics = &TriageMetrics{
		TurnsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: triageSubsystem,
				Name:      "turns_total",
				Help:      "Total number of processed chat turns by route and status",
			},
			[]string{"route", "status"},
		),

		CrisisInterceptionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: triageSubsystem,
				Name:      "crisis_interceptions_total",
				Help:      "Total crisis short-circuits by detected language",
			},
			[]string{"language"},
		),

		EmotionalStatesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: triageSubsystem,
				Name:      "emotional_states_total",
				Help:      "Detected emotional states across turns",
			},
			[]string{"state"},
		),

		StepFailuresTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: triageSubsystem,
				Name:      "step_failures_total",
				Help:      "Pipeline step failures that triggered a fallback",
			},
			[]string{"step"},
		),

		TurnDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: triageSubsystem,
				Name:      "turn_duration_seconds",
				Help:      "End-to-end turn processing latency in seconds",
				Buckets:   []float64{0.01, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"route"},
		),

		ActiveSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: triageSubsystem,
				Name:      "active_sessions",
				Help:      "Number of live sessions in the in-memory store",
			},
		),
	}

	return DefaultMetrics
}

// CrisisRouteLabel is the route label used for crisis short-circuit turns,
// which never get a real routing decision.
const CrisisRouteLabel = "CRISIS"

// RecordTurn records one completed turn.
//
// # Inputs
//
//   - route: The route label (RAG, WEB, DIRECT, or CRISIS).
//   - fallback: Whether any step substituted a fallback response.
//   - seconds: End-to-end latency in seconds.
func (m *TriageMetrics) RecordTurn(route string, fallback bool, seconds float64) {
	status := "success"
	if fallback {
		status = "fallback"
	}
	m.TurnsTotal.WithLabelValues(route, status).Inc()
	m.TurnDurationSeconds.WithLabelValues(route).Observe(seconds)
}

// RecordCrisis records a crisis interception.
func (m *TriageMetrics) RecordCrisis(language string) {
	m.CrisisInterceptionsTotal.WithLabelValues(language).Inc()
}

// RecordEmotionalState records the detected state for a turn.
func (m *TriageMetrics) RecordEmotionalState(state string) {
	m.EmotionalStatesTotal.WithLabelValues(state).Inc()
}

// RecordStepFailure records a step that fell back.
func (m *TriageMetrics) RecordStepFailure(step string) {
	m.StepFailuresTotal.WithLabelValues(step).Inc()
}

// SetActiveSessions updates the live session gauge.
func (m *TriageMetrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}
