// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
package triage

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Language identifies the dominant script of a user message.
type Language string

const (
	LanguageArabic  Language = "arabic"
	LanguageEnglish Language = "english"
	LanguageMixed   Language = "mixed"
)

// EmotionalState is the classified emotional category of a user message.
type EmotionalState string

const (
	StateCalm       EmotionalState = "calm"
	StateAnxious    EmotionalState = "anxious"
	StateDepressed  EmotionalState = "depressed"
	StateAngry      EmotionalState = "angry"
	StateDistressed EmotionalState = "distressed"
	StateCrisis     EmotionalState = "crisis"
)

// RiskLevel grades how urgently a message needs attention.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Assessment is the result of classifying a single user message.
//
// Invariant: Risk == RiskCritical if and only if State == StateCrisis.
// MatchedKeyword carries the lexicon entry that decided the category, or ""
// when no category matched (calm/low).
type Assessment struct {
	State          EmotionalState `json:"emotional_state"`
	Risk           RiskLevel      `json:"risk_level"`
	Language       Language       `json:"detected_language"`
	MatchedKeyword string         `json:"matched_keyword,omitempty"`
}

// IsCrisis reports whether the assessment requires the crisis short-circuit.
func (a Assessment) IsCrisis() bool {
	return a.Risk == RiskCritical
}

type lexiconFile struct {
	Categories []Category `yaml:"categories"`
}

// Category is one keyword list in the lexicon, mapped to a fixed
// (EmotionalState, RiskLevel) pair. Categories are evaluated from highest
// to lowest priority; the first match wins.
type Category struct {
	Name     string         `yaml:"name"`
	State    EmotionalState `yaml:"state"`
	Risk     RiskLevel      `yaml:"risk"`
	Priority int            `yaml:"priority"`

	// keywords holds the flattened, lowercased terms from all languages.
	keywords []string
}

// rawCategory mirrors the YAML shape (keyword map keyed by language name).
type rawCategory struct {
	Name     string              `yaml:"name"`
	State    EmotionalState      `yaml:"state"`
	Risk     RiskLevel           `yaml:"risk"`
	Priority int                 `yaml:"priority"`
	Keywords map[string][]string `yaml:"keywords"`
}

func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	var raw rawCategory
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if err := validState(raw.State); err != nil {
		return fmt.Errorf("category %q: %w", raw.Name, err)
	}
	if err := validRisk(raw.Risk); err != nil {
		return fmt.Errorf("category %q: %w", raw.Name, err)
	}

	c.Name = raw.Name
	c.State = raw.State
	c.Risk = raw.Risk
	c.Priority = raw.Priority
	for _, terms := range raw.Keywords {
		for _, term := range terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				return fmt.Errorf("category %q contains an empty keyword", raw.Name)
			}
			c.keywords = append(c.keywords, term)
		}
	}
	if len(c.keywords) == 0 {
		return fmt.Errorf("category %q has no keywords", raw.Name)
	}
	return nil
}

func validState(s EmotionalState) error {
	switch s {
	case StateCalm, StateAnxious, StateDepressed, StateAngry, StateDistressed, StateCrisis:
		return nil
	default:
		return fmt.Errorf("invalid value for emotional state: %q", s)
	}
}

func validRisk(r RiskLevel) error {
	switch r {
	case RiskLow, RiskModerate, RiskHigh, RiskCritical:
		return nil
	default:
		return fmt.Errorf("invalid value for risk level: %q", r)
	}
}

func (f *lexiconFile) sortByPriority() {
	sort.SliceStable(f.Categories, func(i, j int) bool {
		return f.Categories[i].Priority > f.Categories[j].Priority
	})
}
