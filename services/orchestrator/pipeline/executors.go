// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/sakina-ai/sakina/services/llm"
	"github.com/sakina-ai/sakina/services/orchestrator/datatypes"
	"github.com/sakina-ai/sakina/services/orchestrator/retrieval"
	"github.com/sakina-ai/sakina/services/orchestrator/search"
)

// Fixed apology fallbacks, one per path. Substituted whenever the path's
// external calls fail; the envelope still reports the failure via metadata.
const (
	ragFallbackMessage    = "Sorry, I couldn't retrieve information from the knowledge base."
	webFallbackMessage    = "Sorry, I couldn't perform web search at the moment."
	directFallbackMessage = "Sorry, I couldn't process your request at the moment."
)

// RetrievalTopK is how many passages the RAG path asks the retrieval store
// for.
const RetrievalTopK = 3

// noDocumentsMarker stands in for the context block when retrieval returns
// nothing, so the generator states the gap instead of hallucinating sources.
const noDocumentsMarker = "No relevant documents found."

// Executor runs one response path for a turn. Implementations must not
// return errors: any failure is absorbed into state (fallback response text
// plus metadata flags).
type Executor interface {
	Execute(ctx context.Context, state *TurnState, window []datatypes.Message)
}

// counselorMessages assembles the generator input for a path: counselor
// persona, recent conversation window, then the current prompt.
func counselorMessages(window []datatypes.Message, userPrompt string) []datatypes.Message {
	messages := make([]datatypes.Message, 0, len(window)+2)
	messages = append(messages, datatypes.Message{Role: datatypes.RoleSystem, Content: counselorSystemPrompt})
	messages = append(messages, window...)
	messages = append(messages, datatypes.Message{Role: datatypes.RoleUser, Content: userPrompt})
	return messages
}

// ===== RAG =====

// RAGExecutor answers from the therapeutic knowledge base: top-k retrieval,
// then generation over the joined passages.
type RAGExecutor struct {
	client    llm.LLMClient
	retriever retrieval.Retriever
}

func NewRAGExecutor(client llm.LLMClient, retriever retrieval.Retriever) *RAGExecutor {
	return &RAGExecutor{client: client, retriever: retriever}
}

func (e *RAGExecutor) Execute(ctx context.Context, state *TurnState, window []datatypes.Message) {
	ctx, span := tracer.Start(ctx, "RAGExecutor.Execute")
	defer span.End()

	passages, err := e.retriever.Retrieve(ctx, state.EnhancedQuery, RetrievalTopK)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("Knowledge base retrieval failed", "error", err)
		state.Response = ragFallbackMessage
		state.StepResult("rag", err)
		return
	}
	span.SetAttributes(attribute.Int("rag.num_passages", len(passages)))

	contextBlock := noDocumentsMarker
	if len(passages) > 0 {
		contextBlock = strings.Join(passages, "\n")
	}
	prompt := ragContextPrompt(contextBlock) + "\n\n" + state.EnhancedQuery

	answer, err := e.client.Chat(ctx, counselorMessages(window, prompt), llm.GenerationParams{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("Generation failed on RAG path", "error", err)
		state.Response = ragFallbackMessage
		state.StepResult("rag", err)
		return
	}

	state.Response = answer
	state.StepResult("rag", nil)
}

// ===== WEB =====

// WebExecutor answers from live web search results.
type WebExecutor struct {
	client   llm.LLMClient
	searcher search.Searcher
}

func NewWebExecutor(client llm.LLMClient, searcher search.Searcher) *WebExecutor {
	return &WebExecutor{client: client, searcher: searcher}
}

func (e *WebExecutor) Execute(ctx context.Context, state *TurnState, window []datatypes.Message) {
	ctx, span := tracer.Start(ctx, "WebExecutor.Execute")
	defer span.End()

	results, err := e.searcher.Search(ctx, state.EnhancedQuery)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("Web search failed", "error", err)
		state.Response = webFallbackMessage
		state.StepResult("web_search", err)
		return
	}

	prompt := webResultsPrompt(results) + "\n\n" + state.EnhancedQuery

	answer, err := e.client.Chat(ctx, counselorMessages(window, prompt), llm.GenerationParams{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("Generation failed on WEB path", "error", err)
		state.Response = webFallbackMessage
		state.StepResult("web_search", err)
		return
	}

	state.Response = answer
	state.StepResult("web_search", nil)
}

// ===== DIRECT =====

// DirectExecutor generates from the model alone. It is the default path and
// the degradation target for routing failures.
type DirectExecutor struct {
	client llm.LLMClient
}

func NewDirectExecutor(client llm.LLMClient) *DirectExecutor {
	return &DirectExecutor{client: client}
}

func (e *DirectExecutor) Execute(ctx context.Context, state *TurnState, window []datatypes.Message) {
	ctx, span := tracer.Start(ctx, "DirectExecutor.Execute")
	defer span.End()

	answer, err := e.client.Chat(ctx, counselorMessages(window, state.EnhancedQuery), llm.GenerationParams{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("Generation failed on DIRECT path", "error", err)
		state.Response = directFallbackMessage
		state.StepResult("direct_llm", err)
		return
	}

	state.Response = answer
	state.StepResult("direct_llm", nil)
}
