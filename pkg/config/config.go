// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Supported generator backends.
const (
	BackendOpenAI = "openai"
	BackendOllama = "ollama"
)

// Config holds all orchestrator settings. Credentials for the individual
// backends (OPENAI_API_KEY, GOOGLE_API_KEY, ...) are read by the adapters
// themselves; this struct only carries topology and policy knobs.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// LLMBackend selects the generator: openai or ollama.
	LLMBackend string

	// WeaviateURL is the knowledge base endpoint. Empty disables the RAG
	// path; routing decisions of RAG then degrade to DIRECT.
	WeaviateURL string

	// APIToken protects the /v1 group when non-empty.
	APIToken string

	// KBDescription overrides the routing prompt's description of the
	// knowledge base contents.
	KBDescription string

	// OTELEndpoint is the OTLP gRPC collector address.
	OTELEndpoint string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded configuration overrides from .env file")
	}

	cfg := &Config{
		Port:          getEnv("SAKINA_PORT", "12300"),
		LLMBackend:    strings.ToLower(getEnv("LLM_BACKEND_TYPE", BackendOllama)),
		WeaviateURL:   strings.Trim(os.Getenv("WEAVIATE_SERVICE_URL"), "\"' "),
		APIToken:      os.Getenv("SAKINA_API_TOKEN"),
		KBDescription: os.Getenv("SAKINA_KB_DESCRIPTION"),
		OTELEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "sakina-otel-collector:4317"),
	}

	if cfg.LLMBackend != BackendOpenAI && cfg.LLMBackend != BackendOllama {
		return nil, fmt.Errorf("unsupported LLM_BACKEND_TYPE %q (want %s or %s)",
			cfg.LLMBackend, BackendOpenAI, BackendOllama)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
