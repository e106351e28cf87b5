// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sakina-ai/sakina/services/orchestrator/datatypes"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	chatServerURL string // Orchestrator base URL
	chatAPIToken  string // Bearer token, if the server requires one
	chatResumeID  string // Session ID to resume
	chatShowMeta  bool   // Print routing metadata after each turn
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation with a running orchestrator",
	Long: `Opens an interactive loop that sends each line to the orchestrator's
/v1/chat endpoint and prints the response. Type 'exit' or 'quit' to leave.
The session ID is kept across turns so the server retains conversation
context; pass --resume to continue an earlier session.`,
	Run: runChatCommand,
}

func init() {
	chatCmd.Flags().StringVar(&chatServerURL, "server", "", "Orchestrator base URL (defaults to $SAKINA_SERVER or http://localhost:12300)")
	chatCmd.Flags().StringVar(&chatAPIToken, "token", "", "API bearer token (defaults to $SAKINA_API_TOKEN)")
	chatCmd.Flags().StringVar(&chatResumeID, "resume", "", "Resume a conversation using a specific session ID")
	chatCmd.Flags().BoolVar(&chatShowMeta, "show-meta", false, "Print route and pipeline metadata after each turn")
}

func serverBaseURL() string {
	if chatServerURL != "" {
		return strings.TrimRight(chatServerURL, "/")
	}
	if env := os.Getenv("SAKINA_SERVER"); env != "" {
		return strings.TrimRight(env, "/")
	}
	return "http://localhost:12300"
}

func apiToken() string {
	if chatAPIToken != "" {
		return chatAPIToken
	}
	return os.Getenv("SAKINA_API_TOKEN")
}

func runChatCommand(cmd *cobra.Command, args []string) {
	baseURL := serverBaseURL()
	sessionID := chatResumeID

	fmt.Printf("Connected to %s. Type 'exit' or 'quit' to leave.\n", baseURL)
	if sessionID != "" {
		fmt.Printf("Resuming session %s\n", sessionID)
	}

	client := &http.Client{Timeout: 120 * time.Second}
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		resp, err := sendChatTurn(client, baseURL, sessionID, line)
		if err != nil {
			log.Printf("Error: %v", err)
			continue
		}
		sessionID = resp.SessionID

		fmt.Printf("\nSakina: %s\n", resp.Response)
		if resp.IsCrisis {
			fmt.Println("\n[crisis response — please reach out to the resources above]")
		}
		if chatShowMeta {
			fmt.Printf("[session=%s route=%s state=%s risk=%s lang=%s %dms]\n",
				resp.SessionID, resp.RouteTaken, resp.EmotionalState,
				resp.RiskLevel, resp.DetectedLanguage, resp.ProcessingTimeMs)
		}
	}

	if sessionID != "" {
		fmt.Printf("\nSession ID: %s (use --resume to continue)\n", sessionID)
	}
}

func sendChatTurn(client *http.Client, baseURL, sessionID, message string) (*datatypes.ChatTurnResponse, error) {
	reqBody := datatypes.ChatTurnRequest{
		SessionID: sessionID,
		Message:   message,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/v1/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := apiToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contacting orchestrator: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d: %s", httpResp.StatusCode, strings.TrimSpace(string(body)))
	}

	var resp datatypes.ChatTurnResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, nil
}
