// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package triage classifies user messages by language, emotional state, and
// self-harm risk, and produces the deterministic crisis safety response.
//
// The package is the safety core of the service: it performs no I/O, never
// calls a model, and never returns an error from classification. It holds the
// state of the loaded keyword lexicon and provides methods to scan messages
// against it.
package triage

import (
	"fmt"
	"strings"

	"github.com/sakina-ai/sakina/services/triage/lexicon"
	"gopkg.in/yaml.v3"
)

// Engine classifies messages against the embedded bilingual keyword lexicon.
//
// The zero value is not usable; construct with NewEngine. An Engine is
// immutable after construction and safe for concurrent use.
type Engine struct {
	categories []Category
}

// NewEngine initializes a new triage Engine.
//
// It takes no arguments: the keyword lexicon is embedded in the binary via
// the lexicon package. It performs the following operations:
//  1. Unmarshals the embedded YAML data.
//  2. Lowercases and flattens the per-language keyword lists.
//  3. Sorts categories by priority so crisis is always evaluated first.
//
// Returns an error if the embedded YAML is malformed, names an unknown
// state or risk level, or carries an empty keyword list. These are
// initialization errors only; classification itself never fails.
func NewEngine() (*Engine, error) {
	var file lexiconFile
	if err := yaml.Unmarshal(lexicon.EmotionLexicon, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal the embedded lexicon: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("embedded lexicon contains no categories")
	}
	file.sortByPriority()
	return &Engine{categories: file.Categories}, nil
}

// Classify analyzes a user message and returns its emotional state, risk
// level, and detected language.
//
// # Description
//
// The message is lowercased once (ASCII-safe: only Latin script is affected,
// Arabic keyword matching is unaffected by casing) and tested against each
// category's keywords in strict priority order. Crisis has the highest
// priority and is exclusive: a single crisis match returns
// (crisis, critical) immediately and no other category is evaluated. This
// ordering is the core safety invariant; crisis detection must never be
// masked by a co-occurring match in a lower category.
//
// Matching is substring containment, not word-boundary matching. False
// positives on embedded substrings are an accepted tradeoff for recall on
// crisis terms; see the lexicon file header before changing this.
//
// # Outputs
//
//   - Assessment: never zero; unmatched or empty text yields
//     (calm, low, detected language). Classification cannot fail.
func (e *Engine) Classify(text string) Assessment {
	lowered := strings.ToLower(text)
	lang := DetectLanguage(text)

	for _, cat := range e.categories {
		for _, kw := range cat.keywords {
			if strings.Contains(lowered, kw) {
				return Assessment{
					State:          cat.State,
					Risk:           cat.Risk,
					Language:       lang,
					MatchedKeyword: kw,
				}
			}
		}
	}

	return Assessment{State: StateCalm, Risk: RiskLow, Language: lang}
}

// Categories returns the loaded category names in evaluation order.
// Intended for diagnostics and tests.
func (e *Engine) Categories() []string {
	names := make([]string, 0, len(e.categories))
	for _, c := range e.categories {
		names = append(names, c.Name)
	}
	return names
}
