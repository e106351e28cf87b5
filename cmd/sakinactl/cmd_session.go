// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or delete conversation sessions on the orchestrator",
}

var sessionSummaryCmd = &cobra.Command{
	Use:   "summary [session-id]",
	Short: "Print the summary projection for a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		callSessionEndpoint(http.MethodGet, "/v1/sessions/"+args[0]+"/summary")
	},
}

var sessionExportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Print the full transcript and summary for a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		callSessionEndpoint(http.MethodGet, "/v1/sessions/"+args[0]+"/export")
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset [session-id]",
	Short: "Clear a session's history but keep the session ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		callSessionEndpoint(http.MethodPost, "/v1/sessions/"+args[0]+"/reset")
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session and its history",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		callSessionEndpoint(http.MethodDelete, "/v1/sessions/"+args[0])
	},
}

func init() {
	sessionCmd.PersistentFlags().StringVar(&chatServerURL, "server", "", "Orchestrator base URL (defaults to $SAKINA_SERVER or http://localhost:12300)")
	sessionCmd.PersistentFlags().StringVar(&chatAPIToken, "token", "", "API bearer token (defaults to $SAKINA_API_TOKEN)")
}

func callSessionEndpoint(method, path string) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequest(method, serverBaseURL()+path, nil)
	if err != nil {
		log.Fatalf("Error building request: %v", err)
	}
	if token := apiToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("Error contacting orchestrator: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Error reading response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	fmt.Println(strings.TrimSpace(string(body)))
}
