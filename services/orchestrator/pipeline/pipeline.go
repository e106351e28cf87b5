// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/sakina-ai/sakina/services/orchestrator/datatypes"
	"github.com/sakina-ai/sakina/services/orchestrator/observability"
	"github.com/sakina-ai/sakina/services/orchestrator/session"
	"github.com/sakina-ai/sakina/services/triage"
)

// Total-failure fallbacks, used only if a path executor somehow yields empty
// text. Language-matched so the user is never answered in the wrong script.
const (
	technicalErrorEnglish = "Sorry, a technical error occurred. Please try again or contact a specialist."
	technicalErrorArabic  = "آسف، حدث خطأ تقني. يرجى المحاولة مرة أخرى أو التواصل مع المختص."
)

// Pipeline runs the full per-turn flow.
//
// # Description
//
// Process executes a strict sequence: triage the raw text, short-circuit to
// the fixed crisis response when risk is critical, otherwise enhance the
// query, pick a route, and run the matching executor with the session's
// recent context window. The conversation state is updated and an envelope
// is returned in every case; no step failure aborts the turn.
//
// The crisis check runs against the RAW input, before enhancement, and the
// crisis path never touches the generator. That ordering is a safety policy,
// not an optimization.
//
// # Thread Safety
//
// Safe for concurrent use across sessions. Callers must serialize turns
// within one session; the session store hands out shared *Conversation
// values whose own locking protects history but not turn ordering.
type Pipeline struct {
	engine    *triage.Engine
	enhancer  *Enhancer
	router    *Router
	executors map[datatypes.Route]Executor
	store     *session.Store
	metrics   *observability.TriageMetrics
}

// Config carries the collaborators for NewPipeline.
type Config struct {
	Engine   *triage.Engine
	Enhancer *Enhancer
	Router   *Router
	RAG      Executor
	Web      Executor
	Direct   Executor
	Store    *session.Store

	// Metrics may be nil; recording is skipped.
	Metrics *observability.TriageMetrics
}

// NewPipeline validates the wiring and builds a Pipeline. The Direct
// executor is mandatory since it is the degradation target; RAG and Web may
// be nil, in which case their routes coerce to DIRECT at execution time.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("pipeline requires a triage engine")
	}
	if cfg.Enhancer == nil || cfg.Router == nil {
		return nil, fmt.Errorf("pipeline requires an enhancer and a router")
	}
	if cfg.Direct == nil {
		return nil, fmt.Errorf("pipeline requires a DIRECT executor")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("pipeline requires a session store")
	}

	executors := map[datatypes.Route]Executor{
		datatypes.RouteDirect: cfg.Direct,
	}
	if cfg.RAG != nil {
		executors[datatypes.RouteRAG] = cfg.RAG
	}
	if cfg.Web != nil {
		executors[datatypes.RouteWeb] = cfg.Web
	}

	return &Pipeline{
		engine:    cfg.Engine,
		enhancer:  cfg.Enhancer,
		router:    cfg.Router,
		executors: executors,
		store:     cfg.Store,
		metrics:   cfg.Metrics,
	}, nil
}

// Process handles one turn and always returns a complete envelope.
func (p *Pipeline) Process(ctx context.Context, req *datatypes.ChatTurnRequest) *datatypes.ChatTurnResponse {
	ctx, span := tracer.Start(ctx, "Pipeline.Process")
	defer span.End()

	start := time.Now()
	sessionID := req.EnsureSessionID()
	conv := p.store.GetOrCreate(sessionID)
	resp := datatypes.NewChatTurnResponse(req.RequestID, sessionID)

	state := NewTurnState(req.Message)
	state.Assessment = p.engine.Classify(req.Message)
	span.SetAttributes(
		attribute.String("triage.state", string(state.Assessment.State)),
		attribute.String("triage.risk", string(state.Assessment.Risk)),
		attribute.String("triage.language", string(state.Assessment.Language)),
	)

	if state.Assessment.IsCrisis() {
		p.handleCrisis(state, conv, resp)
		p.finalize(state, resp, start)
		return resp
	}

	// Capture the context window before this turn is appended.
	window := conv.Window()

	p.enhancer.Enhance(ctx, state)
	p.router.Route(ctx, state)

	executor, ok := p.executors[state.Route]
	if !ok {
		// Route points at an unconfigured path (e.g. no search credentials).
		slog.Warn("Route has no configured executor, degrading to DIRECT", "route", state.Route)
		state.SetMeta("route_degraded", string(state.Route))
		state.Route = datatypes.RouteDirect
		executor = p.executors[datatypes.RouteDirect]
	}
	executor.Execute(ctx, state, window)

	if state.Response == "" {
		state.Response = technicalErrorFallback(state.Assessment.Language)
	}

	conv.AppendTurn(req.Message, state.Response, state.Assessment)

	resp.RouteTaken = state.Route
	resp.EnhancedQuery = state.EnhancedQuery
	p.finalize(state, resp, start)
	return resp
}

// handleCrisis fills the envelope from the fixed safety templates. It makes
// no external calls and cannot fail.
func (p *Pipeline) handleCrisis(state *TurnState, conv *session.Conversation, resp *datatypes.ChatTurnResponse) {
	slog.Warn("Crisis interception triggered",
		"session_id", conv.ID(),
		"language", state.Assessment.Language,
		"matched_keyword", state.Assessment.MatchedKeyword,
	)

	state.Response = triage.CrisisMessage(state.Assessment.Language)
	state.SetMeta("crisis_interception", true)

	resp.IsCrisis = true
	resp.RequiresImmediateAttention = true

	conv.AppendTurn(state.RawQuery, state.Response, state.Assessment)

	if p.metrics != nil {
		p.metrics.RecordCrisis(string(state.Assessment.Language))
	}
}

// finalize copies turn state into the envelope and records metrics.
func (p *Pipeline) finalize(state *TurnState, resp *datatypes.ChatTurnResponse, start time.Time) {
	resp.Response = state.Response
	resp.EmotionalState = state.Assessment.State
	resp.RiskLevel = state.Assessment.Risk
	resp.DetectedLanguage = state.Assessment.Language
	resp.Metadata = state.Metadata()
	resp.ProcessingTimeMs = time.Since(start).Milliseconds()

	if p.metrics == nil {
		return
	}
	route := observability.CrisisRouteLabel
	if !resp.IsCrisis {
		route = string(state.Route)
	}
	p.metrics.RecordTurn(route, hasStepFailure(state, p.metrics), time.Since(start).Seconds())
	p.metrics.RecordEmotionalState(string(state.Assessment.State))
	p.metrics.SetActiveSessions(p.store.Count())
}

// hasStepFailure reports whether any step recorded a failure, and bumps the
// per-step failure counters as a side effect.
func hasStepFailure(state *TurnState, metrics *observability.TriageMetrics) bool {
	failed := false
	for key, value := range state.Metadata() {
		ok, isBool := value.(bool)
		if !isBool || ok || !strings.HasSuffix(key, "_success") {
			continue
		}
		failed = true
		metrics.RecordStepFailure(strings.TrimSuffix(key, "_success"))
	}
	return failed
}

func technicalErrorFallback(lang triage.Language) string {
	if lang == triage.LanguageArabic {
		return technicalErrorArabic
	}
	return technicalErrorEnglish
}
