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

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Language
	}{
		{name: "plain english", input: "Hello, how are you?", want: LanguageEnglish},
		{name: "plain arabic", input: "مرحبا كيف حالك", want: LanguageArabic},
		{name: "empty string", input: "", want: LanguageMixed},
		{name: "digits and punctuation only", input: "1234 !? ...", want: LanguageMixed},
		{name: "mostly english with arabic", input: "I feel تعب today", want: LanguageEnglish},
		{name: "mostly arabic with english", input: "أشعر بالتعب الشديد اليوم ok", want: LanguageArabic},
		{name: "equal counts tie", input: "abc ابج", want: LanguageMixed},
		{name: "arabic diacritics count as arabic", input: "جداً", want: LanguageArabic},
		{name: "non ascii latin ignored", input: "éàü", want: LanguageMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.input))
		})
	}
}
