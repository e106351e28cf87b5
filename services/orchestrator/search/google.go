// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("sakina.orchestrator.search")

// DefaultResultCount is how many search results are folded into the prompt.
const DefaultResultCount = 5

const customSearchEndpoint = "https://www.googleapis.com/customsearch/v1"

// HTTPClient interface allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GoogleSearcher implements Searcher against the Google Custom Search JSON
// API.
type GoogleSearcher struct {
	httpClient HTTPClient
	apiKey     string
	cseID      string
	numResults int
}

// googleSearchResponse is the subset of the Custom Search response we use.
type googleSearchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// NewGoogleSearcher builds a searcher from GOOGLE_API_KEY and GOOGLE_CSE_ID.
// Both must be set; deployments without search credentials should not
// construct a searcher at all and will see the WEB path fall back.
func NewGoogleSearcher() (*GoogleSearcher, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	cseID := os.Getenv("GOOGLE_CSE_ID")
	if apiKey == "" || cseID == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY and GOOGLE_CSE_ID must be set for web search")
	}
	slog.Info("Initializing Google Custom Search client")
	return &GoogleSearcher{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		cseID:      cseID,
		numResults: DefaultResultCount,
	}, nil
}

// Search implements the Searcher interface.
func (g *GoogleSearcher) Search(ctx context.Context, query string) (string, error) {
	ctx, span := tracer.Start(ctx, "GoogleSearcher.Search")
	defer span.End()

	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.cseID)
	params.Set("q", query)
	params.Set("num", fmt.Sprint(g.numResults))

	req, err := http.NewRequestWithContext(ctx, "GET", customSearchEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("Web search call failed", "error", err)
		return "", fmt.Errorf("web search call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		slog.Error("Web search returned an error", "status_code", resp.StatusCode, "response", string(body))
		span.SetStatus(codes.Error, fmt.Sprintf("search status %d", resp.StatusCode))
		return "", fmt.Errorf("web search failed with status %d", resp.StatusCode)
	}

	var parsed googleSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("failed to parse search response: %w", err)
	}
	span.SetAttributes(attribute.Int("search.num_results", len(parsed.Items)))

	if len(parsed.Items) == 0 {
		return "No search results found.", nil
	}

	var sb strings.Builder
	for i, item := range parsed.Items {
		fmt.Fprintf(&sb, "%d. %s\n%s\n%s\n\n", i+1, item.Title, item.Snippet, item.Link)
	}
	slog.Debug("Web search completed", "results", len(parsed.Items))
	return strings.TrimSpace(sb.String()), nil
}
