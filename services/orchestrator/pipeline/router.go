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

	"go.opentelemetry.io/otel/attribute"

	"github.com/sakina-ai/sakina/services/llm"
	"github.com/sakina-ai/sakina/services/orchestrator/datatypes"
)

// Router picks the execution path for an enhanced query.
//
// The generator's raw output is trimmed and upper-cased; anything that is not
// exactly RAG, WEB, or DIRECT coerces to the default route, as does any call
// failure. An unrecognized value never propagates downstream.
type Router struct {
	client       llm.LLMClient
	systemPrompt string
}

// NewRouter creates a Router. kbDescription tells the routing prompt what the
// knowledge base holds; pass "" for the bundled default.
func NewRouter(client llm.LLMClient, kbDescription string) *Router {
	return &Router{
		client:       client,
		systemPrompt: routerSystemPrompt(kbDescription),
	}
}

// Route fills state.Route and records routing_success / routing_error.
func (r *Router) Route(ctx context.Context, state *TurnState) {
	ctx, span := tracer.Start(ctx, "Router.Route")
	defer span.End()

	prompt := r.systemPrompt + "\n\nQuery: " + state.EnhancedQuery
	out, err := r.client.Generate(ctx, prompt, llm.GenerationParams{})
	if err != nil {
		slog.Warn("Routing call failed, using default route",
			"default", datatypes.DefaultRoute, "error", err)
		state.Route = datatypes.DefaultRoute
		state.StepResult("routing", err)
		return
	}

	route, exact := datatypes.ParseRoute(out)
	state.Route = route
	state.StepResult("routing", nil)
	if !exact {
		slog.Debug("Router output coerced to default", "raw", out, "default", route)
		state.SetMeta("routing_coerced", true)
	}
	span.SetAttributes(attribute.String("route.decision", string(route)))
}
