// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sakina-ai/sakina/services/triage"
)

var classifyJSONOutput bool

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Run the risk classifier locally against a message",
	Long: `Runs language detection and the keyword risk classifier over the given
text without contacting a server. Useful for checking how a phrase will be
triaged before it reaches the lexicon in production.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runClassifyCommand,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSONOutput, "json", false, "Output the assessment as JSON")
}

func runClassifyCommand(cmd *cobra.Command, args []string) {
	engine, err := triage.NewEngine()
	if err != nil {
		log.Fatalf("Could not load the emotion lexicon: %v", err)
	}

	text := strings.Join(args, " ")
	assessment := engine.Classify(text)

	if classifyJSONOutput {
		out, err := json.MarshalIndent(assessment, "", "  ")
		if err != nil {
			log.Fatalf("Could not encode assessment: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("Language:  %s\n", assessment.Language)
	fmt.Printf("State:     %s\n", assessment.State)
	fmt.Printf("Risk:      %s\n", assessment.Risk)
	if assessment.MatchedKeyword != "" {
		fmt.Printf("Matched:   %q\n", assessment.MatchedKeyword)
	}
	if assessment.IsCrisis() {
		fmt.Println("\nThis message would trigger the crisis safety response:")
		fmt.Println(triage.CrisisMessage(assessment.Language))
	}
}
