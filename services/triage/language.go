// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
package triage

// DetectLanguage classifies text as Arabic, English, or mixed by counting
// characters in the Arabic Unicode block (U+0600-U+06FF) against ASCII
// alphabetic characters.
//
// # Description
//
// Returns LanguageArabic when Arabic characters strictly outnumber Latin
// ones, LanguageEnglish for the reverse, and LanguageMixed on a tie. The
// empty string and strings with no alphabetic content at all score 0-0 and
// therefore come back as mixed.
//
// The function is pure and total: any string input, including empty and
// punctuation-only text, yields exactly one of the three values and never
// an error.
//
// # Examples
//
//	DetectLanguage("hello")                 // LanguageEnglish
//	DetectLanguage("مرحبا")                 // LanguageArabic
//	DetectLanguage("hello مرحبا")           // whichever count wins
//	DetectLanguage("")                      // LanguageMixed
func DetectLanguage(text string) Language {
	var arabic, latin int
	for _, r := range text {
		switch {
		case r >= 0x0600 && r <= 0x06FF:
			arabic++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			latin++
		}
	}

	switch {
	case arabic > latin:
		return LanguageArabic
	case latin > arabic:
		return LanguageEnglish
	default:
		return LanguageMixed
	}
}
