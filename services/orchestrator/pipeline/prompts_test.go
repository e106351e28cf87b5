// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakina-ai/sakina/services/triage"
)

// The deterministic crisis short-circuit only covers lexicon-listed phrasing.
// The counselor prompt is the second safety layer for anything that slips
// past it, so it must carry the full emergency contact set.
func TestCounselorSystemPrompt_CarriesEmergencyContacts(t *testing.T) {
	assert.Contains(t, counselorSystemPrompt, "## Safety Protocols:")
	assert.Contains(t, counselorSystemPrompt, "## Emergency Situations:")
	assert.Contains(t, counselorSystemPrompt, triage.EmergencyServicesNumber)
	assert.Contains(t, counselorSystemPrompt, triage.LifeSupportCenterNumber)
	assert.Contains(t, counselorSystemPrompt, triage.AlMasarraHospitalNumber)
}

func TestRouterSystemPrompt_KnowledgeBaseDescription(t *testing.T) {
	assert.Contains(t, routerSystemPrompt(""), DefaultKnowledgeBaseDescription)
	assert.Contains(t, routerSystemPrompt("- project wiki dumps"), "- project wiki dumps")
	assert.NotContains(t, routerSystemPrompt("- project wiki dumps"), DefaultKnowledgeBaseDescription)
}
