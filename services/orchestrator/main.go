// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"log"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/sakina-ai/sakina/pkg/config"
	"github.com/sakina-ai/sakina/services/llm"
	"github.com/sakina-ai/sakina/services/orchestrator/datatypes"
	"github.com/sakina-ai/sakina/services/orchestrator/observability"
	"github.com/sakina-ai/sakina/services/orchestrator/pipeline"
	"github.com/sakina-ai/sakina/services/orchestrator/retrieval"
	"github.com/sakina-ai/sakina/services/orchestrator/routes"
	"github.com/sakina-ai/sakina/services/orchestrator/search"
	"github.com/sakina-ai/sakina/services/orchestrator/session"
	"github.com/sakina-ai/sakina/services/triage"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
)

func initTracer(endpoint string) (func(context.Context), error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("sakina-orchestrator")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

// newWeaviateClient parses the configured URL and connects, returning nil
// when the knowledge base is not configured or the URL is unusable. A nil
// client simply disables the RAG path.
func newWeaviateClient(rawURL string) *weaviate.Client {
	if rawURL == "" || !strings.Contains(rawURL, "http") {
		slog.Info("WEAVIATE_SERVICE_URL not set. Running without a knowledge base (RAG disabled).")
		return nil
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		slog.Warn("WEAVIATE_SERVICE_URL is invalid. Running without a knowledge base.",
			"url", rawURL, "error", err)
		return nil
	}

	client, err := weaviate.NewClient(weaviate.Config{
		Host:   parsedURL.Host,
		Scheme: parsedURL.Scheme,
	})
	if err != nil {
		slog.Error("Failed to create Weaviate client", "error", err)
		return nil
	}
	datatypes.EnsureWeaviateSchema(client)
	return client
}

func newLLMClient(backend string) (llm.LLMClient, error) {
	switch backend {
	case config.BackendOpenAI:
		slog.Info("Using OpenAI LLM backend")
		return llm.NewOpenAIClient()
	default:
		slog.Info("Using Ollama LLM backend")
		return llm.NewOllamaClient()
	}
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Init the tracer ---
	cleanup, err := initTracer(cfg.OTELEndpoint)
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	defer cleanup(context.Background())

	metrics := observability.InitMetrics()

	engine, err := triage.NewEngine()
	if err != nil {
		log.Fatalf("FATAL: Could not load the emotion lexicon: %v", err)
	}

	llmClient, err := newLLMClient(cfg.LLMBackend)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	store := session.NewStore()

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go session.NewJanitor(store).Run(janitorCtx)

	pipelineCfg := pipeline.Config{
		Engine:   engine,
		Enhancer: pipeline.NewEnhancer(llmClient),
		Router:   pipeline.NewRouter(llmClient, cfg.KBDescription),
		Direct:   pipeline.NewDirectExecutor(llmClient),
		Store:    store,
		Metrics:  metrics,
	}

	if weaviateClient := newWeaviateClient(cfg.WeaviateURL); weaviateClient != nil {
		pipelineCfg.RAG = pipeline.NewRAGExecutor(llmClient, retrieval.NewWeaviateRetriever(weaviateClient))
	}

	if searcher, err := search.NewGoogleSearcher(); err != nil {
		slog.Info("Web search not configured. Running without the WEB path.", "reason", err)
	} else {
		pipelineCfg.Web = pipeline.NewWebExecutor(llmClient, searcher)
	}

	p, err := pipeline.NewPipeline(pipelineCfg)
	if err != nil {
		log.Fatalf("Failed to assemble the pipeline: %v", err)
	}

	router := gin.Default()
	router.Use(otelgin.Middleware("sakina-orchestrator"))
	routes.SetupRoutes(router, p, store, cfg.APIToken)

	slog.Info("Starting the orchestrator server", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
