// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SAKINA_PORT", "LLM_BACKEND_TYPE", "WEAVIATE_SERVICE_URL",
		"SAKINA_API_TOKEN", "SAKINA_KB_DESCRIPTION", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "12300", cfg.Port)
	assert.Equal(t, BackendOllama, cfg.LLMBackend)
	assert.Empty(t, cfg.WeaviateURL)
	assert.Empty(t, cfg.APIToken)
	assert.Equal(t, "sakina-otel-collector:4317", cfg.OTELEndpoint)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SAKINA_PORT", "8080")
	t.Setenv("LLM_BACKEND_TYPE", "OpenAI") // case-insensitive
	t.Setenv("WEAVIATE_SERVICE_URL", `"http://weaviate:8080"`)
	t.Setenv("SAKINA_API_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendOpenAI, cfg.LLMBackend)
	assert.Equal(t, "http://weaviate:8080", cfg.WeaviateURL, "quotes should be stripped")
	assert.Equal(t, "secret", cfg.APIToken)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_BACKEND_TYPE", "vllm")

	_, err := Load()
	assert.ErrorContains(t, err, "vllm")
}
