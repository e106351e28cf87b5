// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrisisMessage(t *testing.T) {
	tests := []struct {
		name string
		lang Language
	}{
		{name: "english", lang: LanguageEnglish},
		{name: "arabic", lang: LanguageArabic},
		{name: "mixed", lang: LanguageMixed},
		{name: "unknown falls back to arabic", lang: Language("klingon")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := CrisisMessage(tt.lang)
			assert.NotEmpty(t, msg)
			// Every variant must carry the full emergency contact list.
			assert.Contains(t, msg, EmergencyServicesNumber)
			assert.Contains(t, msg, LifeSupportCenterNumber)
			assert.Contains(t, msg, AlMasarraHospitalNumber)
		})
	}
}

func TestCrisisMessage_DistinctTemplates(t *testing.T) {
	en := CrisisMessage(LanguageEnglish)
	ar := CrisisMessage(LanguageArabic)
	mixed := CrisisMessage(LanguageMixed)

	assert.NotEqual(t, en, ar)
	assert.NotEqual(t, en, mixed)
	assert.NotEqual(t, ar, mixed)

	assert.Contains(t, en, "You are not alone")
	assert.Contains(t, ar, "أنت لست وحدك")
	// The mixed variant interleaves both languages.
	assert.Contains(t, mixed, "You are not alone")
	assert.Contains(t, mixed, "أنت لست وحدك")

	assert.Equal(t, CrisisMessage(Language("klingon")), ar)
}
