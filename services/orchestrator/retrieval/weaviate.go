// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/sakina-ai/sakina/services/orchestrator/datatypes"
)

var tracer = otel.Tracer("sakina.orchestrator.retrieval")

// WeaviateRetriever implements Retriever against the TherapeuticDocument
// class using near-text search.
//
// # Thread Safety
//
// Safe for concurrent use. The underlying Weaviate client handles connection
// pooling.
type WeaviateRetriever struct {
	client *weaviate.Client
}

// NewWeaviateRetriever creates a retriever. The client must already be
// connected; schema setup happens at service startup, not here.
func NewWeaviateRetriever(client *weaviate.Client) *WeaviateRetriever {
	return &WeaviateRetriever{client: client}
}

// Retrieve implements the Retriever interface.
func (r *WeaviateRetriever) Retrieve(ctx context.Context, query string, topK int) ([]string, error) {
	ctx, span := tracer.Start(ctx, "WeaviateRetriever.Retrieve")
	defer span.End()
	span.SetAttributes(
		attribute.Int("retrieval.top_k", topK),
		attribute.String("retrieval.class", datatypes.TherapeuticDocumentClass),
	)

	nearText := r.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	fields := []graphql.Field{
		{Name: "content"},
		{Name: "source"},
		{Name: "language"},
		{Name: "_additional", Fields: []graphql.Field{
			{Name: "certainty"},
		}},
	}

	result, err := r.client.GraphQL().Get().
		WithClassName(datatypes.TherapeuticDocumentClass).
		WithFields(fields...).
		WithNearText(nearText).
		WithLimit(topK).
		Do(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("Knowledge base query failed", "error", err)
		return nil, fmt.Errorf("weaviate near-text query failed: %w", err)
	}

	parsed, err := datatypes.ParseGraphQLResponse[datatypes.PassageQueryResponse](result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to parse retrieval results: %w", err)
	}

	passages := make([]string, 0, len(parsed.Get.TherapeuticDocument))
	for _, p := range parsed.Get.TherapeuticDocument {
		if p.Content != "" {
			passages = append(passages, p.Content)
		}
	}
	slog.Debug("Retrieved knowledge base passages", "count", len(passages))
	return passages, nil
}
