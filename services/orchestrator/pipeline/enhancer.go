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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/sakina-ai/sakina/services/llm"
)

var tracer = otel.Tracer("sakina.orchestrator.pipeline")

// MaxEnhancedQueryLen is the hard ceiling on enhancer output, in characters.
// Anything longer is treated as a failed enhancement.
const MaxEnhancedQueryLen = 200

// Enhancer reformulates a raw user query for better retrieval.
//
// # Description
//
// Enhancer delegates to the generator with an enhancement instruction prompt.
// It can never fail past its own boundary: any generator error, empty output,
// or output over MaxEnhancedQueryLen falls back to the original query
// unchanged, with the outcome recorded in the turn metadata under
// enhance_success / enhance_error.
type Enhancer struct {
	client llm.LLMClient
}

// NewEnhancer creates an Enhancer backed by the given generator.
func NewEnhancer(client llm.LLMClient) *Enhancer {
	return &Enhancer{client: client}
}

// Enhance fills state.EnhancedQuery: either a successful reformulation of at
// most MaxEnhancedQueryLen runes, or the raw query verbatim.
func (e *Enhancer) Enhance(ctx context.Context, state *TurnState) {
	ctx, span := tracer.Start(ctx, "Enhancer.Enhance")
	defer span.End()

	prompt := enhancerSystemPrompt + "\n\nOriginal query: " + state.RawQuery
	out, err := e.client.Generate(ctx, prompt, llm.GenerationParams{})
	if err != nil {
		slog.Warn("Query enhancement failed, using original query", "error", err)
		state.EnhancedQuery = state.RawQuery
		state.StepResult("enhance", err)
		return
	}

	out = strings.TrimSpace(out)
	if out == "" || len([]rune(out)) > MaxEnhancedQueryLen {
		slog.Debug("Enhancer output rejected, using original query", "output_len", len([]rune(out)))
		state.EnhancedQuery = state.RawQuery
		state.StepResult("enhance", fmt.Errorf("enhancer output empty or over %d characters", MaxEnhancedQueryLen))
		return
	}

	span.SetAttributes(attribute.Int("enhance.output_len", len([]rune(out))))
	state.EnhancedQuery = out
	state.StepResult("enhance", nil)
}
